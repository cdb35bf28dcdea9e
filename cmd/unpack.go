package cmd

import (
	"github.com/spf13/cobra"

	"github.com/virus-evolution/gonucleic/pkg/fastx"
	"github.com/virus-evolution/gonucleic/pkg/gfio"
	"github.com/virus-evolution/gonucleic/pkg/nucleic"
)

var unpackArchive string
var unpackOutfile string
var unpackRevComp bool
var unpackStart uint32
var unpackLength uint32
var unpackWrap int

func init() {
	rootCmd.AddCommand(unpackCmd)

	unpackCmd.Flags().StringVarP(&unpackArchive, "archive", "i", "stdin", "Archive to read")
	unpackCmd.Flags().StringVarP(&unpackOutfile, "outfile", "o", "stdout", "FASTQ (or FASTA, for reads without quality) file to write")
	unpackCmd.Flags().BoolVarP(&unpackRevComp, "revcomp", "r", false, "Reverse complement every record before writing")
	unpackCmd.Flags().Uint32VarP(&unpackStart, "start", "", 0, "First base of each record to write (0-based)")
	unpackCmd.Flags().Uint32VarP(&unpackLength, "length", "", nucleic.All, "Number of bases of each record to write")
	unpackCmd.Flags().IntVarP(&unpackWrap, "wrap", "w", 0, "Wrap FASTA sequence lines at this width")

	unpackCmd.Flags().SortFlags = false
}

var unpackCmd = &cobra.Command{
	Use:   "unpack",
	Short: "Write the records of an archive as FASTQ/FASTA",
	Long:  `Write the records of an archive as FASTQ/FASTA`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		in, err := gfio.OpenIn(*cmd.Flag("archive"))
		if err != nil {
			return err
		}
		defer gfio.Close(in)

		records, err := nucleic.NewBuilder().ReadArchive(in)
		if err != nil {
			return err
		}

		if unpackRevComp {
			for _, rec := range records {
				rec.ReverseAndComplement()
			}
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

		err = fastx.Write(out, records, fastx.Slice{Start: unpackStart, Length: unpackLength}, unpackWrap)

		return
	},
}
