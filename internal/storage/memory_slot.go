package storage

import "sync"

// MemorySlot keeps slots in process memory. WriteErr, when set, is returned
// from every Write without modifying state.
type MemorySlot struct {
	mu       sync.Mutex
	data     map[string][]byte
	WriteErr error
	Writes   int
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

func (s *MemorySlot) Init() error  { return nil }
func (s *MemorySlot) Load() error  { return nil }
func (s *MemorySlot) Close() error { return nil }

func (s *MemorySlot) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemorySlot) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	s.data[key] = buf
	s.Writes++
	return nil
}

func (s *MemorySlot) GetConfigPath() string {
	return "memory"
}
