package transcode

import (
	"context"
	"io"
	"log/slog"

	"github.com/thms-rmb/marcXmlToJson/encoding/json"
	"github.com/thms-rmb/marcXmlToJson/internal/format"
	"github.com/thms-rmb/marcXmlToJson/internal/logging"
	"github.com/thms-rmb/marcXmlToJson/marc"
	"github.com/thms-rmb/marcXmlToJson/token"
)

// A Transcoder copies records from Reader to Writer as a JSON array.
type Transcoder struct {
	Reader marc.Reader
	Writer *json.Writer
	Logger *slog.Logger // if nil, the default logger is used
}

// Run writes all the records from the reader as a JSON array, flushing the
// writer after each record.  It returns the number of records written.
//
// If reading or writing fails, or ctx is cancelled, Run stops straight away
// and returns the error.  The array is then left open: what was written so
// far is not valid JSON.
func (t *Transcoder) Run(ctx context.Context) (count int, err error) {
	defer format.CatchPrinterError(&err)
	logger := t.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}

	t.Writer.Put(&token.StartArray{})
	for {
		if ctxErr := ctx.Err(); ctxErr != nil {
			logger.Warn("transcoding interrupted", "records", count, "error", ctxErr)
			return count, ctxErr
		}
		record, readErr := t.Reader.Next()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return count, readErr
		}
		Project(record, t.Writer)
		t.Writer.Flush()
		count++
		logger.Debug("record written", "record", count, "fields", record.FieldCount())
	}
	t.Writer.Put(&token.EndArray{})
	t.Writer.Flush()

	logger.Info("transcoding complete", "records", count)
	return count, nil
}
