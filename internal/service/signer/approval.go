package signer

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"staking-client/internal/model"

	"golang.org/x/term"
)

// ApprovalSigner asks the user on the terminal before passing a set on to
// the wrapped Signer.
type ApprovalSigner struct {
	Signer
	in          io.Reader
	out         io.Writer
	interactive func() bool
}

// NewTerminalApprovalSigner prompts on stdin/stderr. Without a terminal every
// request is rejected, since nobody can approve it.
func NewTerminalApprovalSigner(inner Signer) *ApprovalSigner {
	return &ApprovalSigner{
		Signer: inner,
		in:     os.Stdin,
		out:    os.Stderr,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

func (a *ApprovalSigner) SignTxn(ctx context.Context, txns model.UnsignedTransactionSet) (model.SignedTransactionSet, error) {
	if !a.interactive() {
		return nil, fmt.Errorf("%w: no terminal to approve on", ErrRejected)
	}

	fmt.Fprintf(a.out, "\n================ Transactions to sign ================\n")
	for i, txn := range txns {
		fmt.Fprintf(a.out, "[%d] %s\n", i, abbreviate(txn.Txn, 48))
	}
	fmt.Fprintf(a.out, "======================================================\n")
	fmt.Fprintf(a.out, "Sign %d transaction(s)? [y/N]: ", len(txns))

	answer, err := readLine(ctx, a.in)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRejected, err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return a.Signer.SignTxn(ctx, txns)
	default:
		return nil, ErrRejected
	}
}

func readLine(ctx context.Context, in io.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err == io.EOF && line != "" {
			err = nil
		}
		ch <- result{line, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
