package querier

import (
	"context"

	"github.com/darkclainer/leogo/pkg/lang"
	"github.com/darkclainer/leogo/pkg/parser"
)

type Querier interface {
	Translate(ctx context.Context, query string, src lang.Language) ([]*parser.Section, error)
	Close(ctx context.Context) error
}
