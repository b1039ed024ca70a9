package parallel

import "testing"

func TestBufferPool_GetLength(t *testing.T) {
	p := NewBufferPool()

	tests := []struct {
		n       int
		wantLen int
		wantCap int
	}{
		{0, 0, 0},
		{-1, 0, 0},
		{1, 1, 4096},
		{4096, 4096, 4096},
		{4097, 4097, 8192},
		{600 * 3 * 50, 90000, 131072},
	}

	for _, tt := range tests {
		buf := p.Get(tt.n)
		if len(buf) != tt.wantLen || cap(buf) != tt.wantCap {
			t.Errorf("Get(%d): len=%d cap=%d, want len=%d cap=%d",
				tt.n, len(buf), cap(buf), tt.wantLen, tt.wantCap)
		}
	}
}

func TestBufferPool_Reuse(t *testing.T) {
	p := NewBufferPool()

	buf := p.Get(5000)
	buf[0] = 42
	p.Put(buf)

	// sync.Pool may drop items at any time, so only the shape is checked.
	got := p.Get(6000)
	if len(got) != 6000 || cap(got) != 8192 {
		t.Errorf("Get after Put: len=%d cap=%d, want 6000/8192", len(got), cap(got))
	}
}

func TestBufferPool_PutForeign(t *testing.T) {
	p := NewBufferPool()

	// Neither call may panic; odd capacities are dropped.
	p.Put(nil)
	p.Put(make([]byte, 100))
	p.Put(make([]byte, 0, 8192))
}
