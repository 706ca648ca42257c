package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-merkleanchor/anchor"
	"github.com/forestrie/go-merkleanchor/merkle"
)

const proofFileExt = ".proof"

func hashFile(client *anchor.Client, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return merkle.HashContent(client.NewHasher(), content), nil
}

func runAnchor(ctx context.Context, log logger.Logger, cfg config, files []string) (int, error) {
	if len(files) == 0 {
		return exitError, errors.New("at least one FILE is required")
	}

	ledger, err := openLedger(log, cfg)
	if err != nil {
		return exitError, err
	}
	defer ledger.Close()

	client := anchor.NewClient(anchor.ClientConfig{Subject: cfg.subject}, log, ledger)

	hashes := make([][]byte, 0, len(files))
	for _, path := range files {
		leaf, err := hashFile(client, path)
		if err != nil {
			return exitError, err
		}
		hashes = append(hashes, leaf)
	}

	batch, err := client.AnchorBatch(ctx, hashes)
	if err != nil {
		return exitError, err
	}

	codec, err := anchor.NewCBORCodec()
	if err != nil {
		return exitError, err
	}
	for i, path := range files {
		data, err := codec.MarshalCBOR(batch.Proofs[i])
		if err != nil {
			return exitError, err
		}
		if err = os.WriteFile(path+proofFileExt, data, 0o644); err != nil {
			return exitError, err
		}
	}
	fmt.Printf("batch %s root %x block %d leaves %d\n", batch.ID, batch.Root, batch.Block.Height, batch.LeafCount)
	return exitAnchored, nil
}

func runCheck(ctx context.Context, log logger.Logger, cfg config, args []string) (int, error) {
	if len(args) != 2 {
		return exitError, errors.New("FILE and PROOF are required")
	}

	ledger, err := openLedger(log, cfg)
	if err != nil {
		return exitError, err
	}
	defer ledger.Close()

	client := anchor.NewClient(anchor.ClientConfig{Subject: cfg.subject}, log, ledger)

	leaf, err := hashFile(client, args[0])
	if err != nil {
		return exitError, err
	}

	data, err := os.ReadFile(args[1])
	if err != nil {
		return exitError, err
	}
	codec, err := anchor.NewCBORCodec()
	if err != nil {
		return exitError, err
	}
	var proof merkle.Proof
	if err = codec.UnmarshalInto(data, &proof); err != nil {
		return exitError, fmt.Errorf("%s: %w", args[1], err)
	}

	record, found, err := client.CheckBatched(ctx, leaf, proof)
	if err != nil {
		return exitError, err
	}
	if !found {
		fmt.Println("not anchored")
		return exitNotAnchored, nil
	}
	fmt.Printf("anchored root %x block %d at %s\n",
		record.Root, record.Block.Height, time.UnixMilli(record.Timestamp).UTC().Format(time.RFC3339))
	return exitAnchored, nil
}
