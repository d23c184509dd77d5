package hcl

import "github.com/hashicorp/hcl/v2"

// fileSchema matches the top level of a specification file: any number of
// `op "<name>" { ... }` blocks and nothing else.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "op", LabelNames: []string{"name"}},
	},
}

// opBody is the content of a single `op` block. Exactly one strategy is
// expected; the check happens when the block is translated.
type opBody struct {
	Fixed       *float64          `hcl:"fixed,optional"`
	Alias       *string           `hcl:"alias,optional"`
	BoundingBox *boundingBoxBlock `hcl:"bounding_box,block"`
	Regression  *regressionBlock  `hcl:"regression,block"`
}

type boundingBoxBlock struct {
	Samples []*sampleBlock `hcl:"sample,block"`
}

type sampleBlock struct {
	Widths []int   `hcl:"widths"`
	Delay  float64 `hcl:"delay"`
}

type regressionBlock struct {
	Constant *float64     `hcl:"constant,optional"`
	Terms    []*termBlock `hcl:"term,block"`
	Domain   *domainBlock `hcl:"domain,block"`
}

type termBlock struct {
	Coefficient float64 `hcl:"coefficient"`
	// Transform is either a bare keyword (identity) or a string ("identity").
	Transform hcl.Expression `hcl:"transform"`
	Operands  []int          `hcl:"operands"`
}

type domainBlock struct {
	Min []int `hcl:"min"`
	Max []int `hcl:"max"`
}
