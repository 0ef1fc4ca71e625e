package memory

import "context"

type SessionRepo struct {
	store *Store
}

func (r *SessionRepo) Create(_ context.Context, token string, userID int64) error {
	s := r.store
	s.userMu.Lock()
	defer s.userMu.Unlock()
	s.sessions[token] = userID
	s.userTokens[userID] = token
	return nil
}

func (r *SessionRepo) Resolve(_ context.Context, token string) (int64, bool, error) {
	s := r.store
	s.userMu.RLock()
	defer s.userMu.RUnlock()
	uid, ok := s.sessions[token]
	return uid, ok, nil
}

func (r *SessionRepo) ByUser(_ context.Context, userID int64) (string, bool, error) {
	s := r.store
	s.userMu.RLock()
	defer s.userMu.RUnlock()
	token, ok := s.userTokens[userID]
	return token, ok, nil
}

func (r *SessionRepo) Delete(_ context.Context, token string) (bool, error) {
	s := r.store
	s.userMu.Lock()
	defer s.userMu.Unlock()
	uid, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	delete(s.sessions, token)
	if s.userTokens[uid] == token {
		delete(s.userTokens, uid)
	}
	return true, nil
}
