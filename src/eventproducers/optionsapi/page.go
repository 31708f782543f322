package optionsapi

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/kerrybackapps/options-market-data/src/eventmodels"
)

const (
	pageTitle     = "Options Market Data"
	pageSubtitle  = "Market data is fetched from the configured provider. Pick a ticker, an option type and a maturity."
	submitLabel   = "Get Options Data"
	footerCaption = "Data is typically delayed by 15 minutes and may be more delayed outside trading hours."
)

//go:embed page.html
var pageTemplate string

var page = template.Must(template.New("options").Parse(pageTemplate))

type pageData struct {
	Title            string
	Subtitle         string
	SubmitLabel      string
	Caption          string
	Query            eventmodels.OptionsQuery
	OptionTypes      []eventmodels.OptionType
	MaxMaturityIndex int
	Result           *eventmodels.OptionsResult
	Error            string
}

func newPageData(query eventmodels.OptionsQuery, maxMaturityIndex int) *pageData {
	return &pageData{
		Title:            pageTitle,
		Subtitle:         pageSubtitle,
		SubmitLabel:      submitLabel,
		Caption:          footerCaption,
		Query:            query,
		OptionTypes:      eventmodels.OptionTypes,
		MaxMaturityIndex: maxMaturityIndex,
	}
}

func renderPage(w http.ResponseWriter, statusCode int, data *pageData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := page.Execute(w, data); err != nil {
		return fmt.Errorf("renderPage: %w", err)
	}

	return nil
}
