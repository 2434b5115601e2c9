package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ithos-org/ithos/core"
)

type showResult struct {
	ID        core.EntryID   `json:"id"`
	ParentID  core.EntryID   `json:"parent_id"`
	Name      string         `json:"name"`
	TypeID    core.TypeID    `json:"type_id"`
	BlockID   core.BlockID   `json:"block_id"`
	Timestamp core.Timestamp `json:"timestamp"`
	Object    core.Object    `json:"object"`
}

func showCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "resolve a path and print its decoded object and metadata as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(path)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "absolute path to resolve")
	cmd.MarkFlagRequired("path")
	return cmd
}

func runShow(rawPath string) error {
	p, err := core.ParsePath(rawPath)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	_, adapter, err := openChain()
	if err != nil {
		return err
	}
	defer adapter.Close()

	txn, err := adapter.ROTransaction()
	if err != nil {
		return fmt.Errorf("open read transaction: %w", err)
	}
	header, err := txn.FindDirEntry(p)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", rawPath, err)
	}
	entry, err := txn.GetEntry(header.ID)
	if err != nil {
		return fmt.Errorf("fetch entry: %w", err)
	}
	obj, err := entry.Object()
	if err != nil {
		return fmt.Errorf("decode object: %w", err)
	}

	out, err := json.MarshalIndent(showResult{
		ID:        entry.ID,
		ParentID:  entry.ParentID,
		Name:      entry.Name,
		TypeID:    entry.TypeID,
		BlockID:   entry.Metadata.BlockID,
		Timestamp: entry.Metadata.Timestamp,
		Object:    obj,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
