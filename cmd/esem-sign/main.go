// Command esem-sign loads a Signer's share of the key-material bundle
// (internal/esem.LoadSignerMaterial) and produces one ESEM signature
// over a message supplied on the command line (component C6).
package main

import (
	"encoding/hex"
	"log"

	"github.com/readytrader/esem/internal/config"
	"github.com/readytrader/esem/internal/esem"
)

func main() {
	variant := config.ParseVariant(config.EnvDefault("ESEM_VARIANT", "v2"))
	keyDir := config.MustEnv("ESEM_KEY_DIR")
	messageHex := config.MustEnv("ESEM_MESSAGE_HEX")

	message, err := hex.DecodeString(messageHex)
	if err != nil {
		log.Fatalf("invalid ESEM_MESSAGE_HEX: %v", err)
	}

	material, err := esem.LoadSignerMaterial(keyDir, variant)
	if err != nil {
		log.Fatalf("failed to load signer material from %s: %v", keyDir, err)
	}
	defer func() {
		material.MasterSecret.Zeroize()
		for _, table := range material.SecretTables {
			for i := range table {
				table[i].Zeroize()
			}
		}
	}()

	signer, err := esem.NewSigner(variant, material.MasterSecret, material.Subkeys, material.SecretTables)
	if err != nil {
		log.Fatalf("failed to build signer: %v", err)
	}

	sig, err := signer.Sign(message)
	if err != nil {
		log.Fatalf("sign failed: %v", err)
	}

	log.Printf("esem-sign: variant=%s signature=%s", variant, hex.EncodeToString(sig))
}
