package coap

import "testing"

func TestIdentifierGenerator_TokenLength(t *testing.T) {
	gen := NewIdentifierGenerator()
	tok := gen.NextToken()
	if len(tok) != TokenLen {
		t.Fatalf("NextToken() length = %d, want %d", len(tok), TokenLen)
	}
}

func TestIdentifierGenerator_LowCollisionRate(t *testing.T) {
	gen := NewIdentifierGenerator()

	seen := make(map[uint16]bool)
	const n = 1000
	collisions := 0
	for i := 0; i < n; i++ {
		id := gen.NextMessageID()
		if seen[id] {
			collisions++
		}
		seen[id] = true
	}
	// A 16-bit space with 1000 draws will see some birthday collisions;
	// a generator worth trusting should not collide on most draws.
	if collisions > n/2 {
		t.Fatalf("NextMessageID() collided %d/%d times, generator looks degenerate", collisions, n)
	}
}

func TestIdentifierGenerator_TokensVary(t *testing.T) {
	gen := NewIdentifierGenerator()
	a := gen.NextToken()
	b := gen.NextToken()
	same := len(a) == len(b)
	if same {
		for i := range a {
			if a[i] != b[i] {
				same = false
				break
			}
		}
	}
	if same {
		t.Fatalf("two consecutive NextToken() calls returned identical tokens %v", a)
	}
}
