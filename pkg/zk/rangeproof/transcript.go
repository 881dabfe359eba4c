package zkrange

import (
	"bytes"
	"encoding/binary"

	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/curve"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/math/sample"
	"github.com/WeBankBlockchain/WeDPR-Lab-Core-sub000/pkg/zk"
	"github.com/gtank/merlin"
)

const transcriptLabel = "WeDPR range proof"

type transcript struct {
	group curve.Curve
	t     *merlin.Transcript
}

// newTranscript starts a transcript bound to the bit size, the batch size and both bases.
func newTranscript(group curve.Curve, n, m int, valueBase, blindingBase curve.Point) *transcript {
	t := &transcript{group: group, t: merlin.NewTranscript(transcriptLabel)}
	t.appendUint64("n", uint64(n))
	t.appendUint64("m", uint64(m))
	t.appendPoint("G", valueBase)
	t.appendPoint("H", blindingBase)
	return t
}

func (t *transcript) appendUint64(label string, x uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], x)
	t.t.AppendMessage([]byte(label), buf[:])
}

func (t *transcript) appendPoint(label string, p curve.Point) {
	t.t.AppendMessage([]byte(label), zk.EncodePoint(p))
}

func (t *transcript) appendScalar(label string, s curve.Scalar) {
	t.t.AppendMessage([]byte(label), zk.EncodeScalar(s))
}

func (t *transcript) challenge(label string) curve.Scalar {
	buf := t.t.ExtractBytes([]byte(label), t.group.SafeScalarBytes())
	return sample.Scalar(bytes.NewReader(buf), t.group)
}
