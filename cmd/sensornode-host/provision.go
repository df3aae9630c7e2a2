//go:build !(rp2040 || rp2350)

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sensornode-go/services/config"
	"sensornode-go/storage"
	"sensornode-go/x/logx"
)

// newSeedCommand writes the profile and seed into the store file without
// running the node, replacing whatever configuration it held.
func newSeedCommand() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a provisioning profile or seed file into the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := defaults(o)
			if err != nil {
				return err
			}
			blk, err := storage.OpenFile(o.store, o.storeSize)
			if err != nil {
				return err
			}
			defer blk.Close()
			pool, err := storage.NewPool(blk, storage.DefaultPoolStart, 0)
			if err != nil {
				return err
			}
			st := config.NewStore(logx.Discard())
			st.SetDefaults(rec)
			if err := st.Initialize(pool); err != nil {
				return err
			}
			if err := st.Reset(); err != nil {
				return err
			}
			for k := config.Key(0); k < config.KeyCount; k++ {
				v, _ := st.Get(k)
				fmt.Fprintf(cmd.OutOrStdout(), "%2d %-26s %s\n", k, k.Name(), v)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.store, "store", envString("SENSORNODE_STORE", "sensornode.bin"), "file backing the configuration store")
	f.Int64Var(&o.storeSize, "store-size", int64(envInt("SENSORNODE_STORE_SIZE", 4096)), "size of the store file in bytes")
	f.StringVar(&o.seed, "seed", envString("SENSORNODE_SEED", ""), "YAML provisioning file")
	f.StringVar(&o.profile, "profile", envString("SENSORNODE_PROFILE", ""), "embedded board profile")
	return cmd
}
