package parser

import "github.com/ferrite-lang/ferritec/pkg/token"

// TerminatorStyle is the statement-terminator convention latched for a file.
type TerminatorStyle int

const (
	// TerminatorUnset means no statement has been terminated yet.
	TerminatorUnset TerminatorStyle = iota
	// TerminatorNewline means statements end at a significant NEWLINE.
	TerminatorNewline
	// TerminatorSemicolon means statements end at an explicit ';'.
	TerminatorSemicolon
)

// BlockContext tracks the kind and start position of an enclosing block, for
// error messages ("unclosed if starting at 4:1").
type BlockContext struct {
	Kind     string
	StartPos token.Position
}

// ParseContext carries parser state that needs explicit save/restore across
// speculative parses: the block stack and the latched statement-terminator
// style. It is never a package-level global — every Parser owns one, and
// generic re-instantiation (in the checker) follows the same discipline with
// the semantic.Checker's own push/pop stacks.
type ParseContext struct {
	blockStack       []BlockContext
	terminatorStyle  TerminatorStyle
	disableTerminatorWarnings bool
}

// NewParseContext creates an empty ParseContext.
func NewParseContext() *ParseContext {
	return &ParseContext{}
}

// PushBlock records entry into a new block.
func (ctx *ParseContext) PushBlock(kind string, pos token.Position) {
	ctx.blockStack = append(ctx.blockStack, BlockContext{Kind: kind, StartPos: pos})
}

// PopBlock records exit from the innermost block.
func (ctx *ParseContext) PopBlock() {
	if len(ctx.blockStack) > 0 {
		ctx.blockStack = ctx.blockStack[:len(ctx.blockStack)-1]
	}
}

// CurrentBlock returns the innermost block, or nil if at top level.
func (ctx *ParseContext) CurrentBlock() *BlockContext {
	if len(ctx.blockStack) == 0 {
		return nil
	}
	return &ctx.blockStack[len(ctx.blockStack)-1]
}

// LatchTerminator records the terminator style used to end a statement. The
// first call wins; it returns false if style conflicts with an already
// latched style (the caller turns that into a warning, not an error).
func (ctx *ParseContext) LatchTerminator(style TerminatorStyle) bool {
	if ctx.terminatorStyle == TerminatorUnset {
		ctx.terminatorStyle = style
		return true
	}
	return ctx.terminatorStyle == style
}

// Snapshot returns a deep copy for speculative parsing.
func (ctx *ParseContext) Snapshot() *ParseContext {
	cp := &ParseContext{
		terminatorStyle:           ctx.terminatorStyle,
		disableTerminatorWarnings: ctx.disableTerminatorWarnings,
	}
	cp.blockStack = make([]BlockContext, len(ctx.blockStack))
	copy(cp.blockStack, ctx.blockStack)
	return cp
}

// Restore replaces ctx's state with a previously taken Snapshot.
func (ctx *ParseContext) Restore(snap *ParseContext) {
	ctx.terminatorStyle = snap.terminatorStyle
	ctx.disableTerminatorWarnings = snap.disableTerminatorWarnings
	ctx.blockStack = make([]BlockContext, len(snap.blockStack))
	copy(ctx.blockStack, snap.blockStack)
}
