package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gophledger/internal/ledger"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

var (
	errAmountEmpty   = errors.New("금액을 입력해주세요.")
	errAmountDigits  = errors.New("금액은 숫자만 입력할 수 있습니다.")
	errAmountTooLong = fmt.Errorf("금액은 최대 %d자리까지 입력할 수 있습니다.", ledger.MaxAmountLen)
	errAmountZero    = errors.New("금액은 0보다 커야 합니다.")
	errCategory      = errors.New("알 수 없는 카테고리입니다.")
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a PIN from the user's terminal
// without echo. A newline is printed after the read to keep the UI tidy.
func GetPassword(prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(pw)), nil
}

// GetMultiline prints a prompt to w and reads multiple lines until an empty
// line is entered (i.e., the user presses Enter twice). The trailing newline
// on each line is trimmed and the collected text is joined with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(빈 줄에서 Enter를 누르면 끝납니다)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// parseAmount accepts "12,000" style input: separators and spaces are
// dropped, the rest must be at most MaxAmountLen digits and above zero.
func parseAmount(s string) (int64, error) {
	digits := strings.NewReplacer(",", "", " ", "").Replace(s)
	if digits == "" {
		return 0, errAmountEmpty
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, errAmountDigits
		}
	}
	if len(digits) > ledger.MaxAmountLen {
		return 0, errAmountTooLong
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, errAmountDigits
	}
	if n <= 0 {
		return 0, errAmountZero
	}
	return n, nil
}

// categoryMenu renders the fixed category set as "1) 식비  2) 교통 ...".
func categoryMenu() string {
	var sb strings.Builder
	for i, c := range ledger.Categories {
		if i > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%d) %s", i+1, c)
	}
	return sb.String()
}

// pickCategory resolves a menu number or a category name. Blank input
// picks the default category.
func pickCategory(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ledger.Categories[0], nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(ledger.Categories) {
			return "", errCategory
		}
		return ledger.Categories[n-1], nil
	}
	for _, c := range ledger.Categories {
		if c == s {
			return c, nil
		}
	}
	return "", errCategory
}

// parseKind maps user input to a ledger kind.
func parseKind(s string) (ledger.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "i", "수입", "+":
		return ledger.KindIncome, true
	case "expense", "e", "지출", "-", "":
		return ledger.KindExpense, true
	}
	return "", false
}
