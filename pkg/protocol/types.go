package protocol

// Ephemeral is a short-lived key pair generated fresh for every handshake attempt.
// Both values are lowercase hex.
type Ephemeral struct {
	Secret string `json:"secret" yaml:"secret"`
	Public string `json:"public" yaml:"public"`
}

// Session is the result of a successful session derivation.
// Key is the shared session key K; Proof is the deriving party's proof
// (M1 for the client, M2 for the server), to be sent to the peer.
type Session struct {
	Key   string `json:"key" yaml:"key"`
	Proof string `json:"proof" yaml:"proof"`
}

// Registration holds the long-lived values provisioned for a user.
// The server stores it instead of the password.
//
// A verifier is only usable under the parameter set and private key
// derivation it was created with, so those are recorded alongside it.
// Iterations is set for PBKDF2 only.
type Registration struct {
	Username      string `json:"username" yaml:"username"`
	Salt          string `json:"salt" yaml:"salt"`
	Verifier      string `json:"verifier" yaml:"verifier"`
	HashAlgorithm string `json:"hash_algorithm,omitempty" yaml:"hash_algorithm,omitempty"`
	PrimeGroup    string `json:"prime_group,omitempty" yaml:"prime_group,omitempty"`
	KDF           string `json:"kdf,omitempty" yaml:"kdf,omitempty"`
	Iterations    int    `json:"iterations,omitempty" yaml:"iterations,omitempty"`
}

// GroupInfo describes a parameter set for display.
type GroupInfo struct {
	HashAlgorithm string `json:"hash_algorithm" yaml:"hash_algorithm"`
	PrimeGroup    string `json:"prime_group" yaml:"prime_group"`
	N             string `json:"n" yaml:"n"`
	G             string `json:"g" yaml:"g"`
	K             string `json:"k" yaml:"k"`
	HashBytes     int    `json:"hash_bytes" yaml:"hash_bytes"`
	PadBytes      int    `json:"pad_bytes" yaml:"pad_bytes"`
}
