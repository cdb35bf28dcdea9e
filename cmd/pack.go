package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virus-evolution/gonucleic/pkg/alphabet"
	"github.com/virus-evolution/gonucleic/pkg/gfio"
	"github.com/virus-evolution/gonucleic/pkg/nucleic"
	"github.com/virus-evolution/gonucleic/pkg/quality"
	"github.com/virus-evolution/gonucleic/pkg/sam"
)

var packSamfile string
var packOutfile string
var packQuantize bool
var packPermissive bool
var packOriginal bool
var packKeepUnmapped bool
var packKeepSecondary bool
var packThreads int

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().StringVarP(&packSamfile, "samfile", "s", "stdin", "SAM file to read. If none is specified, will read from stdin")
	packCmd.Flags().StringVarP(&packOutfile, "outfile", "o", "stdout", "Archive to write")
	packCmd.Flags().BoolVarP(&packQuantize, "quantize", "q", false, "Store quality scores at 2 bits per base (lossy)")
	packCmd.Flags().BoolVarP(&packPermissive, "permissive", "", false, "Accept '-' (as A) and U (as T) in sequences")
	packCmd.Flags().BoolVarP(&packOriginal, "original", "", false, "Store reverse strand reads in the orientation they were sequenced in")
	packCmd.Flags().BoolVarP(&packKeepUnmapped, "keep-unmapped", "", false, "Keep unmapped reads")
	packCmd.Flags().BoolVarP(&packKeepSecondary, "keep-secondary", "", false, "Keep secondary and supplementary mappings")
	packCmd.Flags().IntVarP(&packThreads, "threads", "t", 1, "Number of threads to use")

	packCmd.Flags().SortFlags = false
}

func newBuilder(quantize, permissive bool) *nucleic.Builder {
	b := nucleic.NewBuilder()
	if quantize {
		b.Quality = quality.ModeQuantized
	}
	if permissive {
		b.Alphabet = &alphabet.Permissive
	}
	return b
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Pack the reads of a SAM file into an archive",
	Long:  `Pack the reads of a SAM file into an archive`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		in, err := gfio.OpenIn(*cmd.Flag("samfile"))
		if err != nil {
			return err
		}
		defer gfio.Close(in)

		records, err := sam.Load(context.Background(), in, newBuilder(packQuantize, packPermissive), sam.Options{
			KeepUnmapped:  packKeepUnmapped,
			KeepSecondary: packKeepSecondary,
			Original:      packOriginal,
			Threads:       packThreads,
		})
		if err != nil {
			return err
		}

		out, err := gfio.OpenOut(*cmd.Flag("outfile"))
		if err != nil {
			return err
		}
		defer func() {
			if cerr := gfio.Close(out); err == nil {
				err = cerr
			}
		}()

		err = nucleic.WriteArchive(out, records)
		if err != nil {
			return err
		}

		summary := nucleic.Summarise(records)
		log.Infof("packed %d records (%d bases) into %d bytes", summary.Records, summary.Bases, summary.Footprint)

		return
	},
}
