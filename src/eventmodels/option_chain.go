package eventmodels

import "fmt"

type OptionChain struct {
	Symbol       StockSymbol
	MaturityDate string
	Calls        []OptionChainRow
	Puts         []OptionChainRow
}

func (c *OptionChain) Select(optionType OptionType) ([]OptionChainRow, error) {
	switch optionType {
	case OptionTypeCall:
		return c.Calls, nil
	case OptionTypePut:
		return c.Puts, nil
	default:
		return nil, fmt.Errorf("OptionChain: Select: invalid option type: %s", optionType)
	}
}
