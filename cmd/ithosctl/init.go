package main

import (
	"crypto/ed25519"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ithos-org/ithos/core"
)

func initCmd() *cobra.Command {
	var admin, comment string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "generate an admin keypair and append the genesis block to a fresh chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(admin, comment)
		},
	}
	cmd.Flags().StringVar(&admin, "admin", "manager", "username for the bootstrap admin entry")
	cmd.Flags().StringVar(&comment, "comment", "genesis", "comment recorded on the genesis block")
	return cmd
}

func runInit(admin, comment string) error {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return fmt.Errorf("generate admin keypair: %w", err)
	}

	sealed, salt, err := sealAdminKey(priv)
	if err != nil {
		return fmt.Errorf("seal admin private key: %w", err)
	}

	block, err := core.NewGenesisBlock(core.CipherSuiteEd25519, admin, priv, []byte(pub), sealed, salt, core.Now(), comment)
	if err != nil {
		return fmt.Errorf("build genesis block: %w", err)
	}

	c, adapter, err := openChain()
	if err != nil {
		return err
	}
	defer adapter.Close()

	if err := c.Append(block); err != nil {
		return fmt.Errorf("append genesis block: %w", err)
	}
	if err := writeAdminKey(priv); err != nil {
		return fmt.Errorf("persist admin key: %w", err)
	}

	id, err := block.ID()
	if err != nil {
		return err
	}
	fmt.Printf("chain initialized; tip = %x\n", id)
	return nil
}
