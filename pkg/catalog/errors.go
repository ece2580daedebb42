package catalog

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/robertsuvada-sys/biotope-fqi-app/pkg/errcode"
)

// ErrMalformed means the catalog text has no usable habitat data.
var ErrMalformed = errors.New("catalog is malformed")

// MalformedError creates an error for a catalog without group names or
// without matrix entries.
func MalformedError(groupsNum, entriesNum int) error {
	msg := `<err>Cannot use the habitat catalog</err>

<em>Group names found:</em> %d
<em>Matrix entries found:</em> %d

<em>Possible causes:</em>
  - The file is not the habitat catalog export
  - "SECTION 4: Similarity" is missing or renamed
  - The catalog file is empty or truncated`

	return &gn.Error{
		Code: errcode.CatalogMalformedError,
		Msg:  msg,
		Vars: []any{groupsNum, entriesNum},
		Err: fmt.Errorf(
			"%w: %d group names, %d matrix entries",
			ErrMalformed, groupsNum, entriesNum,
		),
	}
}
