package HEMark

// Vector is a logical vector of field elements mod the plaintext modulus.
type Vector []uint64

// OperandKind tags one side of a homomorphic operation as an encoded
// plaintext or an encrypted ciphertext.
type OperandKind int

const (
	Plain OperandKind = iota
	Cipher
)

func (k OperandKind) String() string {
	if k == Plain {
		return "P"
	}
	return "C"
}

// Operator is the homomorphic operation under measurement.
type Operator int

const (
	Add Operator = iota
	Mul
)

func (op Operator) String() string {
	if op == Add {
		return "add"
	}
	return "mul"
}
