package cryptography

import (
	"encoding/asn1"
	"encoding/pem"
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/boundless-rsa/internal/domain/rsa"
)

// PEM block types of boundless RSA keys. They differ from PKCS#1 types on
// purpose: the keys are unpadded textbook keys and must not be loaded by
// standard RSA tooling.
const (
	PublicKeyPEMType  = "BOUNDLESS RSA PUBLIC KEY"
	PrivateKeyPEMType = "BOUNDLESS RSA PRIVATE KEY"
)

const privateKeyVersion = 0

type publicKeyASN1 struct {
	N *big.Int
	E *big.Int
}

type privateKeyASN1 struct {
	Version int
	P       *big.Int
	Q       *big.Int
	D       *big.Int
}

func encodePublicKeyPEM(key *rsa.PublicKey) ([]byte, error) {
	der, err := asn1.Marshal(publicKeyASN1{N: toBig(key.N()), E: toBig(key.E())})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: PublicKeyPEMType, Bytes: der}), nil
}

func encodePrivateKeyPEM(key *rsa.PrivateKey) ([]byte, error) {
	der, err := asn1.Marshal(privateKeyASN1{
		Version: privateKeyVersion,
		P:       toBig(key.P()),
		Q:       toBig(key.Q()),
		D:       toBig(key.D()),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: PrivateKeyPEMType, Bytes: der}), nil
}

func decodeBlock(data []byte, blockType string) ([]byte, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing the key")
	}
	if block.Type != blockType {
		return nil, fmt.Errorf("unexpected PEM block type %q, want %q", block.Type, blockType)
	}
	return block.Bytes, nil
}

func decodePublicKeyPEM(data []byte) (*rsa.PublicKey, error) {
	der, err := decodeBlock(data, PublicKeyPEMType)
	if err != nil {
		return nil, err
	}

	var raw publicKeyASN1
	rest, err := asn1.Unmarshal(der, &raw)
	if err != nil {
		return nil, fmt.Errorf("unable to parse public key: %w", err)
	}
	if len(rest) > 0 {
		return nil, errors.New("trailing data after public key")
	}

	n, err := fromBig(raw.N)
	if err != nil {
		return nil, err
	}
	e, err := fromBig(raw.E)
	if err != nil {
		return nil, err
	}
	return rsa.NewPublicKey(n, e)
}

func decodePrivateKeyPEM(data []byte) (*rsa.PrivateKey, error) {
	der, err := decodeBlock(data, PrivateKeyPEMType)
	if err != nil {
		return nil, err
	}

	var raw privateKeyASN1
	rest, err := asn1.Unmarshal(der, &raw)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key: %w", err)
	}
	if len(rest) > 0 {
		return nil, errors.New("trailing data after private key")
	}
	if raw.Version != privateKeyVersion {
		return nil, fmt.Errorf("unsupported private key version %d", raw.Version)
	}

	p, err := fromBig(raw.P)
	if err != nil {
		return nil, err
	}
	q, err := fromBig(raw.Q)
	if err != nil {
		return nil, err
	}
	d, err := fromBig(raw.D)
	if err != nil {
		return nil, err
	}
	return rsa.NewPrivateKey(p, q, d)
}
