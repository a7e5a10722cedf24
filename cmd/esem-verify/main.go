// Command esem-verify drives the Verifier role (component C8): it
// loads the master public key, runs the L-round request/reply exchange
// against the Server(s) over internal/transport, and reports Accept or
// Reject (distinguishing VERIFY_REJECT from PROTOCOL_ERROR, spec §7).
package main

import (
	"encoding/hex"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/readytrader/esem/internal/config"
	"github.com/readytrader/esem/internal/esem"
	"github.com/readytrader/esem/internal/transport"
)

func main() {
	variant := config.ParseVariant(config.EnvDefault("ESEM_VARIANT", "v2"))
	keyDir := config.MustEnv("ESEM_KEY_DIR")
	signatureHex := config.MustEnv("ESEM_SIGNATURE_HEX")
	messageHex := config.MustEnv("ESEM_MESSAGE_HEX")
	mode := config.EnvDefault("ESEM_LISTEN_MODE", "multiplexed")
	timeout := 5 * time.Second

	signature, err := hex.DecodeString(signatureHex)
	if err != nil {
		log.Fatalf("invalid ESEM_SIGNATURE_HEX: %v", err)
	}
	message, err := hex.DecodeString(messageHex)
	if err != nil {
		log.Fatalf("invalid ESEM_MESSAGE_HEX: %v", err)
	}

	masterPublic, err := esem.LoadMasterPublic(keyDir)
	if err != nil {
		log.Fatalf("failed to load master public key from %s: %v", keyDir, err)
	}

	verifier, err := esem.NewVerifier(variant, masterPublic)
	if err != nil {
		log.Fatalf("failed to build verifier: %v", err)
	}

	var client *transport.Client
	switch mode {
	case "multiplexed":
		addr := config.MustEnv("ESEM_SERVER_ADDR")
		params, perr := esem.ParamsFor(variant)
		if perr != nil {
			log.Fatalf("invalid variant: %v", perr)
		}
		client, err = transport.DialMultiplexed(addr, params.L, timeout)
	case "distinct":
		addrs := strings.Split(config.MustEnv("ESEM_SERVER_ADDRS"), ",")
		client, err = transport.DialDistinct(addrs, timeout)
	default:
		log.Fatalf("invalid ESEM_LISTEN_MODE=%q (expected multiplexed or distinct)", mode)
	}
	if err != nil {
		log.Fatalf("failed to connect to server(s): %v", err)
	}
	defer client.Close()

	err = verifier.Verify(signature, message, client)
	switch {
	case err == nil:
		log.Printf("esem-verify: ACCEPT")
	case errors.Is(err, esem.ErrVerifyReject):
		log.Fatalf("esem-verify: REJECT: %v", err)
	default:
		log.Fatalf("esem-verify: protocol failure: %v", err)
	}
}
