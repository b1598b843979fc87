package codec

import (
	"fmt"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"
)

// Point encodes elements of a kyber group in their canonical binary form.
type Point struct {
	Group kyber.Group
}

func NewPoint(g kyber.Group) Point {
	return Point{Group: g}
}

// Ed25519Point is the codec for points of the Ed25519 suite.
func Ed25519Point() Point {
	return Point{Group: suites.MustFind("Ed25519")}
}

func (c Point) Encode(p kyber.Point) ([]byte, error) {
	if p == nil {
		return nil, encodeErr[kyber.Point](errNilValue)
	}
	b, err := p.MarshalBinary()
	if err != nil {
		return nil, encodeErr[kyber.Point](err)
	}
	return b, nil
}

func (c Point) Decode(b []byte) (kyber.Point, error) {
	if want := c.Group.PointLen(); len(b) != want {
		return nil, decodeErr[kyber.Point](len(b), fmt.Errorf("expected %d bytes", want))
	}
	p := c.Group.Point()
	if err := p.UnmarshalBinary(b); err != nil {
		return nil, decodeErr[kyber.Point](len(b), err)
	}
	return p, nil
}
