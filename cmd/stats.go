package cmd

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/virus-evolution/gonucleic/pkg/gfio"
	"github.com/virus-evolution/gonucleic/pkg/nucleic"
	"github.com/virus-evolution/gonucleic/pkg/quality"
	"github.com/virus-evolution/gonucleic/pkg/sam"
)

var statsSamfile string
var statsPermissive bool
var statsThreads int

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsSamfile, "samfile", "s", "stdin", "SAM file to read. If none is specified, will read from stdin")
	statsCmd.Flags().BoolVarP(&statsPermissive, "permissive", "", false, "Accept '-' (as A) and U (as T) in sequences")
	statsCmd.Flags().IntVarP(&statsThreads, "threads", "t", 1, "Number of threads to use")
}

// quantizationError is the mean absolute score error of quantized records,
// weighted by length
func quantizationError(reads []sam.Read, records []*nucleic.NucleicAcid) float64 {
	var sum float64
	var n int
	for i, rec := range records {
		if !rec.HasQuality() {
			continue
		}
		decoded := quality.EncodePlain(rec.InflateQuality(0, nucleic.All))
		sum += quality.MeanAbsError(reads[i].Quality, decoded) * float64(decoded.Len())
		n += decoded.Len()
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report how compactly the reads of a SAM file pack",
	Long:  `Report how compactly the reads of a SAM file pack, with plain and with quantized quality scores`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {

		in, err := gfio.OpenIn(*cmd.Flag("samfile"))
		if err != nil {
			return err
		}
		defer gfio.Close(in)

		opts := sam.Options{Threads: statsThreads}
		reads, err := sam.ReadAll(in, opts)
		if err != nil {
			return err
		}
		log.Debugf("read %d records", len(reads))

		plain, err := sam.Pack(context.Background(), reads, newBuilder(false, statsPermissive), opts)
		if err != nil {
			return err
		}
		quantized, err := sam.Pack(context.Background(), reads, newBuilder(true, statsPermissive), opts)
		if err != nil {
			return err
		}

		p := nucleic.Summarise(plain)
		q := nucleic.Summarise(quantized)

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "records\t%d\n", p.Records)
		fmt.Fprintf(w, "with_quality\t%d\n", p.WithQuality)
		fmt.Fprintf(w, "bases\t%d\n", p.Bases)
		fmt.Fprintf(w, "bytes_plain\t%d\n", p.Footprint)
		fmt.Fprintf(w, "bytes_quantized\t%d\n", q.Footprint)
		fmt.Fprintf(w, "quantization_mae\t%.4f\n", quantizationError(reads, quantized))

		return
	},
}
