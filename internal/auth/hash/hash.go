package hash

import (
	"github.com/alexedwards/argon2id"
)

// Hasher produces and verifies one-way digests of passwords and refresh
// tokens. Digests are self-describing (PHC format) and salted per call, so
// two digests of the same secret are never equal; comparison must go through
// Verify.
type Hasher interface {
	Hash(secret string) (string, error)
	Verify(digest, candidate string) bool
}

var params = &argon2id.Params{
	Memory:      64 * 1024, // 64 MiB
	Iterations:  2,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

type argonHasher struct {
	params *argon2id.Params
}

func NewArgon2() Hasher {
	return &argonHasher{params: params}
}

func (a *argonHasher) Hash(secret string) (string, error) {
	return argon2id.CreateHash(secret, a.params)
}

// Verify recomputes with the parameters embedded in digest and compares in
// constant time. It fails closed: a malformed digest reports a mismatch
// rather than an error, so callers cannot tell a wrong secret from a corrupt
// record.
func (a *argonHasher) Verify(digest, candidate string) bool {
	ok, err := argon2id.ComparePasswordAndHash(candidate, digest)
	if err != nil {
		return false
	}
	return ok
}
