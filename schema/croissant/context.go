package croissant

// Context returns the JSON-LD context used by Croissant 1.0 documents.
func Context() map[string]any {
	return map[string]any{
		"@language":  "en",
		"@vocab":     "https://schema.org/",
		"citeAs":     "cr:citeAs",
		"column":     "cr:column",
		"conformsTo": "dct:conformsTo",
		"cr":         "http://mlcommons.org/croissant/",
		"rai":        "http://mlcommons.org/croissant/RAI/",
		"data": map[string]any{
			"@id":   "cr:data",
			"@type": "@json",
		},
		"dataType": map[string]any{
			"@id":   "cr:dataType",
			"@type": "@vocab",
		},
		"dct":           "http://purl.org/dc/terms/",
		"examples":      map[string]any{"@id": "cr:examples", "@type": "@json"},
		"extract":       "cr:extract",
		"field":         "cr:field",
		"fileProperty":  "cr:fileProperty",
		"fileObject":    "cr:fileObject",
		"fileSet":       "cr:fileSet",
		"format":        "cr:format",
		"includes":      "cr:includes",
		"isLiveDataset": "cr:isLiveDataset",
		"jsonPath":      "cr:jsonPath",
		"key":           "cr:key",
		"md5":           "cr:md5",
		"parentField":   "cr:parentField",
		"path":          "cr:path",
		"recordSet":     "cr:recordSet",
		"references":    "cr:references",
		"regex":         "cr:regex",
		"repeated":      "cr:repeated",
		"replace":       "cr:replace",
		"sc":            "https://schema.org/",
		"separator":     "cr:separator",
		"source":        "cr:source",
		"subField":      "cr:subField",
		"transform":     "cr:transform",
	}
}
