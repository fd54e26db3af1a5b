package store

type node struct {
	id    uint64
	value []byte
	prev  *node
	next  *node
}

// RecordStore is an ordered sequence of byte records with one cursor.
type RecordStore struct {
	head    *node
	tail    *node
	current *node
	len     int
	nextID  uint64
}

func New() *RecordStore {
	return &RecordStore{nextID: 1}
}

// AppendTail stores a copy of value at the tail and returns its slot id.
// Slot ids are never reused within one store.
func (s *RecordStore) AppendTail(value []byte) uint64 {
	n := &node{
		id:    s.nextID,
		value: append([]byte(nil), value...),
	}
	s.nextID++

	if s.len == 0 {
		s.head = n
		s.tail = n
	} else {
		n.prev = s.tail
		s.tail.next = n
		s.tail = n
	}
	s.len++
	return n.id
}

// RemoveHead unlinks the head record and returns its bytes.
func (s *RecordStore) RemoveHead() ([]byte, bool) {
	if s.len == 0 {
		return nil, false
	}

	current := s.head
	next := current.next
	if next != nil {
		next.prev = nil
	} else {
		s.tail = nil
	}
	s.head = next
	s.len--

	if s.current == current {
		s.current = next
	}
	current.next = nil
	current.prev = nil

	return current.value, true
}

// CursorToHead positions the cursor on the head record.
func (s *RecordStore) CursorToHead() ([]byte, bool) {
	s.current = s.head
	return s.CursorCurrent()
}

// CursorToTail positions the cursor on the tail record.
func (s *RecordStore) CursorToTail() ([]byte, bool) {
	s.current = s.tail
	return s.CursorCurrent()
}

// CursorAdvance moves the cursor one record towards the tail. Advancing
// past the tail invalidates the cursor. An invalid cursor stays invalid.
func (s *RecordStore) CursorAdvance() ([]byte, bool) {
	if s.current == nil {
		return nil, false
	}
	s.current = s.current.next
	return s.CursorCurrent()
}

// CursorCurrent returns the record under the cursor.
func (s *RecordStore) CursorCurrent() ([]byte, bool) {
	if s.current == nil {
		return nil, false
	}
	return s.current.value, true
}

// CursorID returns the slot id under the cursor.
func (s *RecordStore) CursorID() (uint64, bool) {
	if s.current == nil {
		return 0, false
	}
	return s.current.id, true
}

// Each calls fn for every record from head to tail until fn returns false.
// The cursor is left untouched.
func (s *RecordStore) Each(fn func(id uint64, value []byte) bool) {
	for n := s.head; n != nil; n = n.next {
		if !fn(n.id, n.value) {
			return
		}
	}
}

func (s *RecordStore) Len() int {
	return s.len
}

// Clear drops every record and invalidates the cursor.
func (s *RecordStore) Clear() {
	for n := s.head; n != nil; {
		next := n.next
		n.prev = nil
		n.next = nil
		n = next
	}
	s.head = nil
	s.tail = nil
	s.current = nil
	s.len = 0
}
