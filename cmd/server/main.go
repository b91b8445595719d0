package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"os"
	"time"

	"github.com/gridbugs/perlin2/internal/config"
	"github.com/gridbugs/perlin2/internal/server"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "", "YAML config file (default: $"+config.EnvConfig+")")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Generate host key if it doesn't exist
	if err := ensureHostKey(cfg.Server.HostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	if cfg.Field.Seed == 0 {
		cfg.Field.Seed = time.Now().UnixNano()
	}
	log.Printf("Field seed %d, scale %gx%g, threshold %.2f",
		cfg.Field.Seed, cfg.Field.ScaleX, cfg.Field.ScaleY, cfg.Field.Threshold)

	metrics := server.NewMetrics()
	if cfg.Server.MetricsAddr != "" {
		metrics.StartHTTP(cfg.Server.MetricsAddr)
	}

	listenAddr := cfg.Server.GetAddr()
	sshServer := server.NewSSHServer(listenAddr, cfg.Server.HostKey, cfg.Field, metrics)
	log.Printf("Starting perlin2 explorer, connect with: ssh -t -p %s localhost", portOf(listenAddr))
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
