package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// BytesScalar is the length of a canonical Ristretto255 scalar encoding.
	BytesScalar = 32
	// BytesPoint is the length of a compressed Ristretto255 element.
	BytesPoint = 32
	// BytesUniform is the amount of uniform randomness reduced into a single scalar or element.
	BytesUniform = 2 * SecBytes // = 64

	// RangeBits is the bit length proven by range proofs: values lie in [0, 2^RangeBits).
	RangeBits = 32
	// MaxRangeBatch bounds the number of values aggregated into one range proof.
	MaxRangeBatch = 256

	// BytesSignature is the length of a compact recoverable secp256k1 signature.
	BytesSignature = 65
	// BytesMessageHash is the length of the digest signed when certifying a blank ballot.
	BytesMessageHash = 32
)
