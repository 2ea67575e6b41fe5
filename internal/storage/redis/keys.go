package redis

import "fmt"

// sessionKey returns the Redis key for a Session
func (s *SessionStore) sessionKey(id string) string {
	return fmt.Sprintf("%s:session:%s", s.cfg.KeyPrefix, id)
}
