package datefmt

import "go.uber.org/zap"

// ParseHook observes (and may rewrite) a pipeline parse.
type ParseHook interface {
	BeforeParse(ctx *ParseHookContext)
	AfterParse(ctx *ParseHookContext)
}

// ParseHookContext carries one parse through the hooks. Before hooks may
// change Input; after hooks may change Value and Error.
type ParseHookContext struct {
	Layout   string
	Locale   string
	Output   OutputType
	Input    string
	Value    Value
	Error    error
	Metadata map[string]any
}

func (ctx *ParseHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
	ctx.Metadata[key] = value
}

func (ctx *ParseHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

type ParseHookFuncs struct {
	Before func(ctx *ParseHookContext)
	After  func(ctx *ParseHookContext)
}

func (h ParseHookFuncs) BeforeParse(ctx *ParseHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h ParseHookFuncs) AfterParse(ctx *ParseHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

// LoggingHook logs rejected input at debug level and accepted input at
// debug level with the resulting kind.
func LoggingHook(logger *zap.Logger) ParseHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ParseHookFuncs{
		After: func(ctx *ParseHookContext) {
			fields := []zap.Field{
				zap.String("layout", ctx.Layout),
				zap.String("locale", ctx.Locale),
				zap.String("input", ctx.Input),
			}
			if ctx.Error != nil {
				logger.Debug("parse rejected", append(fields, zap.Error(ctx.Error))...)
				return
			}
			logger.Debug("parse accepted", append(fields, zap.Stringer("kind", ctx.Value.Kind))...)
		},
	}
}

func filterHooks(hooks []ParseHook) []ParseHook {
	out := make([]ParseHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			out = append(out, hook)
		}
	}
	return out
}
