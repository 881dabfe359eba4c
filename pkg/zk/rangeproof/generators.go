package zkrange

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/internal/params"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/hash"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
)

const generatorDomain = "Bulletproof Generator"

// generators holds the vector bases Gᵢ, Hᵢ of the inner product argument.
//
// They are derived by hashing, so that no discrete logarithm relation between them is known.
type generators struct {
	G, H []curve.Point
}

var (
	generatorsMu    sync.Mutex
	generatorsCache = map[string]*generators{}
)

// generatorsFor returns at least size generators of each kind for group.
// The returned slices must not be modified.
func generatorsFor(group curve.Curve, size int) (*generators, error) {
	generatorsMu.Lock()
	defer generatorsMu.Unlock()

	cached, ok := generatorsCache[group.Name()]
	if !ok {
		cached = &generators{}
		generatorsCache[group.Name()] = cached
	}
	for i := len(cached.G); i < size; i++ {
		g, err := derive(group, "G", i)
		if err != nil {
			return nil, err
		}
		h, err := derive(group, "H", i)
		if err != nil {
			return nil, err
		}
		cached.G = append(cached.G, g)
		cached.H = append(cached.H, h)
	}
	return &generators{G: cached.G[:size], H: cached.H[:size]}, nil
}

func derive(group curve.Curve, label string, index int) (curve.Point, error) {
	h := hash.New(&hash.BytesWithDomain{TheDomain: generatorDomain, Bytes: []byte(group.Name() + label)})
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], uint64(index))
	if err := h.WriteAny(idx[:]); err != nil {
		return nil, fmt.Errorf("zkrange: generator %s%d: %w", label, index, err)
	}
	uniform := make([]byte, params.BytesUniform)
	if _, err := io.ReadFull(h.Digest(), uniform); err != nil {
		return nil, fmt.Errorf("zkrange: generator %s%d: %w", label, index, err)
	}
	return group.PointFromUniformBytes(uniform)
}
