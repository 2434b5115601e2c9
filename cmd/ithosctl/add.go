package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ithos-org/ithos/core"
	pkgconfig "github.com/ithos-org/ithos/pkg/config"
)

func addCmd() *cobra.Command {
	var path, comment, kind, description string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "build and append a single-op block signed by the local admin key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(path, comment, kind, description)
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "absolute path of the entry to create")
	cmd.Flags().StringVar(&comment, "comment", "", "comment recorded on the block")
	cmd.Flags().StringVar(&kind, "kind", "domain", `object class to create: "domain" or "orgunit"`)
	cmd.Flags().StringVar(&description, "description", "", "description field for domain/orgunit objects")
	cmd.MarkFlagRequired("path")
	return cmd
}

func runAdd(rawPath, comment, kind, description string) error {
	p, err := core.ParsePath(rawPath)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	var obj core.Object
	switch kind {
	case "domain":
		obj = core.DomainObject{Description: description}
	case "orgunit":
		obj = core.OrgUnitObject{Description: description}
	default:
		return fmt.Errorf(`unsupported --kind %q: want "domain" or "orgunit"`, kind)
	}

	priv, err := readAdminKey()
	if err != nil {
		return err
	}

	c, adapter, err := openChain()
	if err != nil {
		return err
	}
	defer adapter.Close()

	tip, err := c.Tip()
	if err != nil {
		return fmt.Errorf("read tip: %w", err)
	}

	signerID, err := adminSigningEntryID(adapter)
	if err != nil {
		return err
	}

	body := core.Body{
		ParentID:  tip,
		Timestamp: core.Now(),
		Ops:       []core.Op{{Type: core.OpAdd, Path: p, Object: obj}},
		Comment:   comment,
	}
	sig, err := core.Sign(core.SignatureEd25519, priv, core.SigningPreimage(body))
	if err != nil {
		return fmt.Errorf("sign block: %w", err)
	}
	block := &core.Block{
		Body:    body,
		Witness: core.Witness{Signatures: []core.Signature{{Algorithm: core.SignatureEd25519, Raw: sig, SignerID: signerID}}},
	}

	if err := c.Append(block); err != nil {
		return fmt.Errorf("append block: %w", err)
	}

	id, err := block.ID()
	if err != nil {
		return err
	}
	fmt.Printf("appended; tip = %x\n", id)
	return nil
}

func adminSigningEntryID(adapter interface {
	ROTransaction() (core.ROTxn, error)
}) (core.EntryID, error) {
	admin := pkgconfig.AppConfig.Chain.AdminUser
	txn, err := adapter.ROTransaction()
	if err != nil {
		return 0, fmt.Errorf("open read transaction: %w", err)
	}
	signingPath, err := core.ParsePath("/global/users/" + admin + "/keys/signing")
	if err != nil {
		return 0, err
	}
	header, err := txn.FindDirEntry(signingPath)
	if err != nil {
		return 0, fmt.Errorf("resolve admin signing credential: %w", err)
	}
	return header.ID, nil
}
