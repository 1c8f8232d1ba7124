package pattern

// Builtin returns the built-in hypernym patterns, one per Hearst
// construction. The optional modifier slots widen the span to the full
// noun phrase when the provider annotated one.
func Builtin() Library {
	return Library{
		{
			Name: "such-as",
			Seqs: []Sequence{
				{
					{Dep: "amod", Optional: true},
					{Pos: "NOUN"},
					{Lower: "such"},
					{Lower: "as"},
					{Pos: "PROPN"},
				},
			},
		},
		{
			Name: "and-other",
			Seqs: []Sequence{
				{
					{Dep: "amod", Optional: true},
					{Pos: "NOUN"},
					{Lower: "and", Optional: true},
					{Lower: "or", Optional: true},
					{Lower: "other"},
					{Pos: "NOUN"},
				},
			},
		},
		{
			Name: "including",
			Seqs: []Sequence{
				{
					{Dep: "nummod", Optional: true},
					{Dep: "amod", Optional: true},
					{Pos: "NOUN"},
					{Punct: true},
					{Lower: "including"},
					{Dep: "nummod", Optional: true},
					{Dep: "amod", Optional: true},
					{Pos: "NOUN"},
				},
			},
		},
		{
			Name: "especially",
			Seqs: []Sequence{
				{
					{Dep: "nummod", Optional: true},
					{Dep: "amod", Optional: true},
					{Pos: "NOUN"},
					{Punct: true},
					{Lower: "especially"},
					{Dep: "nummod", Optional: true},
					{Dep: "amod", Optional: true},
					{Pos: "NOUN"},
				},
			},
		},
	}
}
