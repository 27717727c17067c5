/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package tlscert manages the local certificate the Net endpoint's TLS wrap
// uses on the server side (§4.4), adapted from the teacher's certificates
// package: a small config object holding a certificate pair, loaded from
// PEM strings/files or generated as a self-signed pair when none is
// configured.
package tlscert

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"os"
	"time"
)

// Store holds zero or more certificate pairs, mirroring the teacher's
// LenCertificatePair/GetCertificatePair/AddCertificatePair* shape.
type Store struct {
	certs []tls.Certificate
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Len reports the number of loaded certificate pairs.
func (s *Store) Len() int { return len(s.certs) }

// Certificates returns the loaded pairs for use in a tls.Config.
func (s *Store) Certificates() []tls.Certificate {
	out := make([]tls.Certificate, len(s.certs))
	copy(out, s.certs)
	return out
}

// First returns the first loaded pair, or nil if none is loaded.
func (s *Store) First() *tls.Certificate {
	if len(s.certs) == 0 {
		return nil
	}
	return &s.certs[0]
}

// AddPairString loads a PEM-encoded key/certificate pair from strings.
func (s *Store) AddPairString(keyPEM, certPEM string) error {
	c, err := tls.X509KeyPair([]byte(certPEM), []byte(keyPEM))
	if err != nil {
		return fmt.Errorf("tlscert: parse pair: %w", err)
	}
	s.certs = append(s.certs, c)
	return nil
}

// AddPairFile loads a PEM-encoded key/certificate pair from files.
func (s *Store) AddPairFile(keyFile, certFile string) error {
	keyPEM, err := os.ReadFile(keyFile)
	if err != nil {
		return fmt.Errorf("tlscert: read key: %w", err)
	}
	certPEM, err := os.ReadFile(certFile)
	if err != nil {
		return fmt.Errorf("tlscert: read cert: %w", err)
	}
	c, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return fmt.Errorf("tlscert: parse pair: %w", err)
	}
	s.certs = append(s.certs, c)
	return nil
}

// GenerateSelfSigned creates and stores a fresh self-signed ECDSA
// certificate valid for one year, for when the user hasn't configured a
// real certificate but still wants the TLS listener port available.
func (s *Store) GenerateSelfSigned(commonName string) error {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return fmt.Errorf("tlscert: generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return fmt.Errorf("tlscert: generate serial: %w", err)
	}

	tmpl := &x509.Certificate{
		SerialNumber:          serial,
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().AddDate(1, 0, 0),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &priv.PublicKey, priv)
	if err != nil {
		return fmt.Errorf("tlscert: create certificate: %w", err)
	}

	keyDER, err := x509.MarshalECPrivateKey(priv)
	if err != nil {
		return fmt.Errorf("tlscert: marshal key: %w", err)
	}

	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})

	c, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return fmt.Errorf("tlscert: load generated pair: %w", err)
	}
	s.certs = append(s.certs, c)
	return nil
}
