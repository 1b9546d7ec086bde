package auth

import "github.com/alexedwards/argon2id"

// Parâmetros do Argon2id. Ficam embutidos no próprio hash, então podem
// evoluir sem invalidar senhas já gravadas.
var parametros = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash deriva o hash Argon2id da senha.
func Hash(senha string) (string, error) {
	return argon2id.CreateHash(senha, parametros)
}

// Verify compara a senha com um hash gravado, lendo os parâmetros do hash.
func Verify(senha, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(senha, hash)
}
