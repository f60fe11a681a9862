package prompts

const classifySpec = `Respond with a JSON object matching this exact structure:

{
  "hsCode": "8471.30.01",
  "chapter": "84 - Machinery and mechanical appliances",
  "description": "<description of the classified product>",
  "confidence": 92,
  "isDualUse": false,
  "reasoning": "<explanation>"
}

Field constraints:
- hsCode: 8-digit code formatted NNNN.NN.NN, the 6-digit international
  root plus a 2-digit national extension.
- chapter: The 2-digit chapter number and its heading, separated by " - ".
- description: Concise description of the product as classified.
- confidence: Integer between 0 and 100. Expected range is 70 to 99.
- isDualUse: true when the product has credible military, surveillance,
  or weapons applications in addition to its civilian use.
- reasoning: Brief explanation of why this code applies, referencing the
  product characteristics that drove the classification.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Classify exactly one product per response
- Never invent product characteristics not present in the description`

const portfolioSpec = `Respond with a JSON object matching this exact structure:

{
  "products": [
    {
      "productName": "<product>",
      "category": "<category>",
      "hsCode": "8471.30.01",
      "chapter": "84 - Machinery and mechanical appliances",
      "description": "<description>",
      "confidence": 85,
      "isDualUse": false,
      "reasoning": "<explanation>"
    }
  ],
  "industry": "<industry>",
  "riskLevel": "Low"
}

Field constraints:
- products: 3 to 6 entries, each a representative product carrying the
  same classification fields as a single-product response plus a
  productName and category label.
- industry: The company's primary industry.
- riskLevel: Overall export-control risk, exactly one of Low, Medium,
  High. High when several products are dual-use or fall under controlled
  chapters; Low when the portfolio is clearly civilian.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Include only products the company plausibly manufactures or sells
- riskLevel reflects the portfolio as a whole, not the riskiest single
  product`

var specs = map[Stage]string{
	StageClassify:  classifySpec,
	StagePortfolio: portfolioSpec,
}

// Spec returns the hardcoded output specification for a pipeline stage.
// Specifications define the expected JSON shape and behavioral constraints
// and cannot be overridden.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
