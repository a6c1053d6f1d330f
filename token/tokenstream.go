package token

// A WriteStream receives a stream of tokens.  Implementations may process
// each token as soon as it arrives.
type WriteStream interface {
	Put(Token)
}

// An AccumulatorStream keeps all the tokens it is given.
type AccumulatorStream struct {
	toks []Token
}

var _ WriteStream = &AccumulatorStream{}

func NewAccumulatorStream() *AccumulatorStream {
	return &AccumulatorStream{}
}

func (w *AccumulatorStream) Put(tok Token) {
	w.toks = append(w.toks, tok)
}

func (w *AccumulatorStream) GetTokens() []Token {
	return w.toks
}

