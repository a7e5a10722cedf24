// Command esem-keygen runs the ESEM table builder (spec §4.2) and
// writes the out-of-band distribution bundle to disk: master public
// key, master secret, and per-round subkey/public-table/secret-table
// files (internal/esem.SaveKeyMaterial).
package main

import (
	"encoding/hex"
	"log"

	"github.com/readytrader/esem/internal/config"
	"github.com/readytrader/esem/internal/esem"
)

func main() {
	variant := config.ParseVariant(config.EnvDefault("ESEM_VARIANT", "v2"))
	outDir := config.MustEnv("ESEM_KEY_DIR")

	var skAES []byte
	if raw := config.EnvDefault("ESEM_SK_AES_HEX", ""); raw != "" {
		b, err := hex.DecodeString(raw)
		if err != nil {
			log.Fatalf("invalid ESEM_SK_AES_HEX: %v", err)
		}
		skAES = b
	}

	var masterSecret *esem.Scalar
	if raw := config.EnvDefault("ESEM_MASTER_SECRET_HEX", ""); raw != "" {
		b, err := hex.DecodeString(raw)
		if err != nil {
			log.Fatalf("invalid ESEM_MASTER_SECRET_HEX: %v", err)
		}
		sk, err := esem.ScalarFromWideBytes(b)
		if err != nil {
			log.Fatalf("invalid ESEM_MASTER_SECRET_HEX: %v", err)
		}
		masterSecret = &sk
	}

	km, err := esem.KeyGen(variant, skAES, masterSecret)
	if err != nil {
		log.Fatalf("keygen failed: %v", err)
	}
	defer km.Zeroize()

	if err := esem.SaveKeyMaterial(outDir, km); err != nil {
		log.Fatalf("failed to write key material to %s: %v", outDir, err)
	}

	log.Printf("esem-keygen: variant=%s wrote bundle to %s", variant, outDir)
	log.Printf("esem-keygen: master_public=%s", hex.EncodeToString(km.MasterPublic.Bytes()))
}
