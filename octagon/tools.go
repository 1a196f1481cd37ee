// Copyright 2025 The SEC Bot Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package octagon

import (
	"context"

	"github.com/plexfin/secbot/agents"
)

// DefaultTools returns the fixed catalog of research tools, all backed by
// the given gateway client.
//
// The descriptions are the routing signal: each states the entity scope the
// tool covers, the question types it answers, and a worked example, and they
// are kept mutually exclusive wherever possible. The order is specificity
// order — specific tools first, the broad deep-research fallback last — and
// the registry preserves it when presenting the catalog to the model.
func DefaultTools(c *Client) []agents.ResearchTool {
	tool := func(name, model, description string) agents.ResearchTool {
		return agents.ResearchTool{
			Name:        name,
			Description: description,
			Invoke: func(ctx context.Context, prompt string) string {
				return c.Invoke(ctx, model, prompt)
			},
		}
	}

	return []agents.ResearchTool{
		tool("octagon_sec_agent", "octagon-sec-agent",
			"Use ONLY for questions about **PUBLIC** company SEC filings (like 10-K, 10-Q, 8-K), "+
				"financial data reported IN filings, risk factors, CIK numbers, filing dates, or specific "+
				"sections FROM filings. Returns answer and source links. Input requires the PUBLIC company "+
				"name/ticker. Example: 'What is the CIK for Apple Inc?' or 'What were MSFT risk factors in "+
				"their 2023 10-K?'."),
		tool("octagon_transcripts_agent", "octagon-transcripts-agent",
			"Use ONLY for questions about **PUBLIC** company earnings call transcripts or investor "+
				"commentary. Ask about executive statements, financial guidance, analyst questions, or topics "+
				"discussed during calls. Returns answer and source links. Input requires the company name and "+
				"call period. Example: 'What did Microsoft CEO say about AI in the Q4 2023 earnings call?'."),
		tool("octagon_financials_agent", "octagon-financials-agent",
			"Use ONLY for financial statement analysis, calculating specific financial metrics, or "+
				"comparing ratios for **PUBLIC** companies based on reported financials. Returns answer and "+
				"source links. Input requires the company, metric/ratio, and time period. Example: 'Compare "+
				"the gross margins of Apple and Microsoft for fiscal year 2023'."),
		tool("octagon_stock_data_agent", "octagon-stock-data-agent",
			"Use ONLY for questions about **PUBLIC** company stock market data. Ask about stock price "+
				"movements, trading volumes, market trends, valuation metrics, technical indicators, or "+
				"benchmark comparisons. Returns answer and source links. Input requires the company/ticker "+
				"and time period. Example: 'How has NVDA stock performed compared to the S&P 500 over the "+
				"last 6 months?'."),
		tool("octagon_companies_agent", "octagon-companies-agent",
			"Use ONLY for questions about **PRIVATE** company information (companies NOT listed on stock "+
				"exchanges), like general info, financials, employee trends, sector analysis, or competitors. "+
				"Returns answer and potentially source links (if applicable). Providing the website URL "+
				"improves results. Example: 'What is the employee count for Anthropic (anthropic.com)?' "+
				"DO NOT use for public companies like Microsoft or Apple."),
		tool("octagon_funding_agent", "octagon-funding-agent",
			"Use ONLY for questions about **PRIVATE** company startup funding rounds, investors, "+
				"valuations, and investment trends. Returns answer and potentially source links (if "+
				"applicable). Providing the website URL improves results. Example: 'What was OpenAI "+
				"(openai.com) latest funding round size?'."),
		tool("octagon_deals_agent", "octagon-deals-agent",
			"Use this tool to research M&A (mergers and acquisitions) and IPO (initial public offering) "+
				"transactions, prices, and valuations for both **PUBLIC and PRIVATE** companies. Returns "+
				"answer and potentially source links (if applicable). Specify companies involved. Example: "+
				"'What was the acquisition price when Microsoft acquired GitHub?'."),
		tool("octagon_investors_agent", "octagon-investors-agent",
			"Use this tool to look up information about specific **INVESTORS** (VC firms, PE firms, etc.), "+
				"their investment criteria, activities, or check sizes. Returns answer and potentially source "+
				"links (if applicable). Providing the website URL improves results. Example: 'What is the "+
				"typical check size for QED Investors (qedinvestors.com)?'"),
		tool("octagon_debts_agent", "octagon-debts-agent",
			"Use this tool to analyze **PRIVATE DEBT** activities, borrowers, and lenders. Returns answer "+
				"and potentially source links (if applicable). Example: 'List debt activities for borrower "+
				"American Tower' or 'Compile debt activities for lender ING Group in Q4 2024'."),
		tool("octagon_scraper_agent", "octagon-scraper-agent",
			"Use this tool ONLY to extract structured data fields or tables from a **SPECIFIC WEBPAGE "+
				"URL**. Returns extracted data and potentially source link (the URL provided). Clearly state "+
				"what info to extract and provide the full URL. Example: 'Extract property prices from "+
				"zillow.com/san-francisco-ca/'. DO NOT use for general questions."),
		tool("octagon_deep_research_agent", "octagon-deep-research-agent",
			"Use this tool for **COMPLEX or BROAD** research questions requiring aggregation from "+
				"multiple sources or analysis of trends/impacts. Returns answer and source links. Use other "+
				"tools first if the question fits their specific purpose. Example: 'Research the financial "+
				"impact of Apple privacy changes on digital advertising companies'."),
	}
}
