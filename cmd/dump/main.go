package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lazytask/lazytask-contract/rpc/marketplace"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// storageItem is a single contract storage record in hex.
type storageItem struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	marketplaceHash := flag.String("marketplace", "", "LE script hash of the Marketplace contract")
	escrowHash := flag.String("escrow", "", "LE script hash of the Escrow contract")
	reputationHash := flag.String("reputation", "", "LE script hash of the Reputation contract")
	badgeHash := flag.String("badge", "", "LE script hash of the Badge contract")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	case *marketplaceHash == "":
		log.Fatal("missing Marketplace contract hash")
	}

	rootDir := filepath.Join("testdata", *chainLabel)

	err := os.MkdirAll(rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create dump dir: %w", err))
	}

	b, err := newRemoteBlockchain(*neoRPCEndpoint)
	if err != nil {
		log.Fatal(fmt.Errorf("init remote blockchain: %w", err))
	}

	defer b.close()

	contracts := map[string]string{
		"marketplace": *marketplaceHash,
		"escrow":      *escrowHash,
		"reputation":  *reputationHash,
		"badge":       *badgeHash,
	}
	for name, hashLE := range contracts {
		if hashLE == "" {
			continue
		}

		log.Printf("Processing contract '%s'...\n", name)

		err = dumpContract(b, rootDir, name, hashLE)
		if err != nil {
			log.Fatal(fmt.Errorf("dump '%s' contract: %w", name, err))
		}
	}

	mkt, err := util.Uint160DecodeStringLE(*marketplaceHash)
	if err != nil {
		log.Fatal(fmt.Errorf("decode Marketplace contract hash: %w", err))
	}

	reader := marketplace.NewReader(b.actor, mkt)

	nextID, err := reader.NextJobID()
	if err != nil {
		log.Fatal(fmt.Errorf("request number of posted jobs: %w", err))
	}

	feeCap, err := reader.PlatformFee()
	if err != nil {
		log.Fatal(fmt.Errorf("request platform fee: %w", err))
	}

	log.Printf("LazyTask contracts are successfully dumped to '%s/': %s jobs posted, fee ceiling %s bps\n",
		rootDir, nextID, feeCap)
}

func dumpContract(b *remoteBlockchain, rootDir, name, hashLE string) error {
	h, err := util.Uint160DecodeStringLE(hashLE)
	if err != nil {
		return fmt.Errorf("decode contract hash: %w", err)
	}

	_, err = b.rpc.GetContractStateByHash(h)
	if err != nil {
		return fmt.Errorf("get contract state by hash: %w", err)
	}

	var items []storageItem

	err = b.iterateContractStorage(h, func(key, value []byte) error {
		items = append(items, storageItem{
			Key:   hex.EncodeToString(key),
			Value: hex.EncodeToString(value),
		})
		return nil
	})
	if err != nil {
		return fmt.Errorf("iterate contract storage: %w", err)
	}

	data, err := json.MarshalIndent(items, "", " ")
	if err != nil {
		return fmt.Errorf("encode storage items: %w", err)
	}

	return os.WriteFile(filepath.Join(rootDir, name+".json"), data, 0600)
}
