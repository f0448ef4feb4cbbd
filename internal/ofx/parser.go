// Package ofx imports bank statements in OFX/QFX format as ledger
// transaction inputs. Statements are mapped onto one target account in
// the ledger; the statement's own account numbers only matter for
// filtering multi-account files.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/citrushq/citrus/internal/model"
)

// ImportOptions selects the target ledger account and optionally
// restricts the import to one statement account within the file.
type ImportOptions struct {
	// AccountID is the ledger account that receives the entries.
	AccountID string
	// Source, when set, limits the import to statements whose account
	// number matches. Empty imports every statement in the file.
	Source string
}

// Parser reads OFX/QFX statement files.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocess fixes formatting issues common in real-world OFX exports
// before handing the content to the strict parser.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values (must be INFO, WARN, or ERROR).
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML-style files sometimes drop the closing bracket on a bare tag.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// Parse reads an OFX/QFX file and returns transaction inputs targeting
// the configured ledger account. Positive statement amounts become
// income, negative become expenses; amounts are always stored positive.
func (p *Parser) Parse(ctx context.Context, reader io.Reader, opts ImportOptions) ([]model.TransactionInput, error) {
	if opts.AccountID == "" {
		return nil, fmt.Errorf("target account id is required")
	}

	resp, err := p.parseResponse(reader)
	if err != nil {
		return nil, err
	}

	var inputs []model.TransactionInput
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		if opts.Source != "" && string(stmt.BankAcctFrom.AcctID) != opts.Source {
			continue
		}
		bankStmts++
		for _, ofxTx := range stmt.BankTranList.Transactions {
			inputs = append(inputs, p.convert(ofxTx, opts.AccountID))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		if opts.Source != "" && string(stmt.CCAcctFrom.AcctID) != opts.Source {
			continue
		}
		ccStmts++
		for _, ofxTx := range stmt.BankTranList.Transactions {
			inputs = append(inputs, p.convert(ofxTx, opts.AccountID))
		}
	}

	slog.Info("parsed OFX file",
		"transactions", len(inputs),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return inputs, nil
}

// SourceAccounts returns the statement account numbers present in the
// file, for picking a Source filter in multi-account exports.
func (p *Parser) SourceAccounts(ctx context.Context, reader io.Reader) ([]string, error) {
	resp, err := p.parseResponse(reader)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var accounts []string

	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(string(stmt.CCAcctFrom.AcctID))
		}
	}

	return accounts, nil
}

func (p *Parser) parseResponse(reader io.Reader) (*ofxgo.Response, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}
	return resp, nil
}

func (p *Parser) convert(ofxTx ofxgo.Transaction, accountID string) model.TransactionInput {
	amount := decimal.NewFromBigRat(&ofxTx.TrnAmt.Rat, 2)

	txType := model.TypeIncome
	if amount.IsNegative() {
		txType = model.TypeExpense
		amount = amount.Abs()
	}

	return model.TransactionInput{
		AccountID:   accountID,
		Amount:      amount,
		Type:        txType,
		Category:    inferCategory(fmt.Sprintf("%v", ofxTx.TrnType)),
		Description: describe(ofxTx),
		Date:        ofxTx.DtPosted.Time,
	}
}

// inferCategory maps the OFX transaction type to a ledger category where
// one is obvious. Everything else is left uncategorized.
func inferCategory(trnType string) string {
	switch trnType {
	case "INT":
		return "Interest"
	case "FEE", "SRVCHG":
		return "Fees"
	case "ATM", "CASH":
		return "Cash"
	default:
		return ""
	}
}

// describe extracts a readable description, preferring the payee name
// and falling back to NAME/MEMO with bank boilerplate stripped.
func describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}
	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " date fragments.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
