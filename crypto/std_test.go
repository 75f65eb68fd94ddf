package crypto

import (
	"encoding/hex"
	"testing"
)

func TestSHA3_256_KnownVector(t *testing.T) {
	sum := SHA3Provider{}.Sum256([]byte("abc"))
	// SHA3-256("abc")
	const want = "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
	if got := hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("digest mismatch: got=%s want=%s", got, want)
	}
}

func TestBlake2b256_KnownVector(t *testing.T) {
	sum := Blake2bProvider{}.Sum256([]byte("abc"))
	// BLAKE2b-256("abc")
	const want = "bddd813c634239723171ef3fee98579b94964e3bb1cb3e427262c8c068d52319"
	if got := hex.EncodeToString(sum[:]); got != want {
		t.Fatalf("digest mismatch: got=%s want=%s", got, want)
	}
}

func TestProviderByName(t *testing.T) {
	for name, want := range map[string]string{
		"":        HashBlake2b256,
		"blake2b": HashBlake2b256,
		" SHA3 ":  HashSHA3_256,
	} {
		p, err := ProviderByName(name)
		if err != nil {
			t.Fatalf("ProviderByName(%q): %v", name, err)
		}
		if p.Name() != want {
			t.Fatalf("ProviderByName(%q)=%s, want %s", name, p.Name(), want)
		}
	}
	if _, err := ProviderByName("md5"); err == nil {
		t.Fatalf("expected error")
	}
}
