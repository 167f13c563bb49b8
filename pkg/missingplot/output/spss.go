package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/missingplot-go/pkg/missingplot/models"
)

// SPSSOptions configures generated SPSS syntax.
type SPSSOptions struct {
	// Variable is the variable receiving estimates.
	Variable string
	// Precision is the number of decimals, -1 for the shortest exact form.
	Precision int
}

// DefaultSPSSOptions returns the options matching the layout the ingestion
// reader expects: a variable named "value" at full precision.
func DefaultSPSSOptions() SPSSOptions {
	return SPSSOptions{
		Variable:  "value",
		Precision: -1,
	}
}

// SPSSSyntax renders the estimates as SPSS commands that overwrite each
// estimated case. Cases are addressed by $CASENUM, the 1-based position of
// the record the estimate was computed from. Blocks are independent of each
// other; a single EXECUTE runs them all.
func SPSSSyntax(res *models.EstimationResult, opts SPSSOptions) string {
	var b strings.Builder
	WriteSPSSSyntax(&b, res, opts)
	return b.String()
}

// WriteSPSSSyntax writes the syntax produced by SPSSSyntax to w.
func WriteSPSSSyntax(w io.Writer, res *models.EstimationResult, opts SPSSOptions) error {
	variable := opts.Variable
	if variable == "" {
		variable = "value"
	}

	for _, e := range res.Estimates {
		_, err := fmt.Fprintf(w, "* Estimate for row %s, column %s.\nDO IF ($CASENUM = %d).\nCOMPUTE %s = %s.\nEND IF.\n",
			commentText(e.Row), commentText(e.Col), e.Index+1, variable, strconv.FormatFloat(e.Value, 'f', opts.Precision, 64))
		if err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "EXECUTE.\n")
	return err
}

// commentLabel keeps a label on the comment line it is written to. A comment
// ends at a period followed by a line break, so both are replaced.
var commentLabel = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", ".", "_")

func commentText(label string) string {
	return commentLabel.Replace(label)
}
