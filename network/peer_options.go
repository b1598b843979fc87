package network

import (
	"crypto/tls"
	"crypto/x509"
	"log/slog"
	"net"
	"time"
)

type peerConfig struct {
	timeout   time.Duration
	tlsConfig *tls.Config
	scheme    string
	logger    *slog.Logger
}

type PeerOption func(peerConfig) peerConfig

// WithTimeout bounds connection retries and the wait for each message.
func WithTimeout(timeout time.Duration) PeerOption {
	return func(c peerConfig) peerConfig {
		c.timeout = timeout
		return c
	}
}

func WithLogger(logger *slog.Logger) PeerOption {
	return func(c peerConfig) peerConfig {
		c.logger = logger
		return c
	}
}

// WithCertificate serves HTTPS with cert and presents it to other peers.
func WithCertificate(cert tls.Certificate) PeerOption {
	return func(c peerConfig) peerConfig {
		c.tlsConfig = cloneTLS(c.tlsConfig)
		c.tlsConfig.Certificates = append(c.tlsConfig.Certificates, cert)
		c.scheme = "https"
		return c
	}
}

// WithLimitedCAs trusts only certPool, both for the peers this peer
// connects to and for the peers connecting to it.
func WithLimitedCAs(certPool *x509.CertPool) PeerOption {
	return func(c peerConfig) peerConfig {
		c.tlsConfig = cloneTLS(c.tlsConfig)
		c.tlsConfig.RootCAs = certPool
		c.tlsConfig.ClientCAs = certPool
		c.tlsConfig.ClientAuth = tls.RequireAndVerifyClientCert
		return c
	}
}

func cloneTLS(c *tls.Config) *tls.Config {
	if c == nil {
		return &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return c.Clone()
}

func newTLSListener(l net.Listener, c *tls.Config) net.Listener {
	return tls.NewListener(l, c)
}
