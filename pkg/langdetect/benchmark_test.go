package langdetect

import (
	"testing"
)

func BenchmarkFenceInfo(b *testing.B) {
	blocks := map[string][]byte{
		"go":     []byte("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"Hello, World!\")\n}"),
		"python": []byte("def hello():\n    print(\"Hello, World!\")\n\nif __name__ == \"__main__\":\n    hello()"),
		"json":   []byte("{\n  \"name\": \"test\",\n  \"version\": \"1.0.0\"\n}"),
		"prose":  []byte("Dear customer,\nyour order has shipped."),
		"empty":  nil,
	}

	for name, content := range blocks {
		b.Run(name, func(b *testing.B) {
			for range b.N {
				FenceInfo(content)
			}
		})
	}
}
