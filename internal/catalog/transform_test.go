package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/content"
)

func entryLink(id string) map[string]any {
	return map[string]any{"sys": map[string]any{"type": "Link", "linkType": "Entry", "id": id}}
}

func assetLink(id string) map[string]any {
	return map[string]any{"sys": map[string]any{"type": "Link", "linkType": "Asset", "id": id}}
}

func TestTransformProduct(t *testing.T) {
	resp := &content.EntriesResponse{
		Items: []content.Entry{{
			Sys: content.Sys{ID: "prod-1", Type: "Entry"},
			Fields: map[string]any{
				"name":                 "Headphones",
				"slug":                 "headphones",
				"description":          "Noise cancelling",
				"price":                299.99,
				"featuredProductImage": assetLink("asset-1"),
				"productImages":        []any{assetLink("asset-2")},
				"relatedProducts":      []any{entryLink("prod-2")},
			},
		}},
		Includes: content.Includes{
			Entry: []content.Entry{{
				Sys: content.Sys{ID: "prod-2", Type: "Entry"},
				Fields: map[string]any{
					"name":            "Watch",
					"slug":            "watch",
					"price":           399.99,
					"relatedProducts": []any{entryLink("prod-1")},
				},
			}},
			Asset: []content.Asset{
				{
					Sys: content.Sys{ID: "asset-1", Type: "Asset"},
					Fields: map[string]any{
						"title": "Front",
						"file": map[string]any{
							"url": "//images.example.com/front.jpg",
							"details": map[string]any{
								"image": map[string]any{"width": 800.0, "height": 600.0},
							},
						},
					},
				},
				{
					Sys: content.Sys{ID: "asset-2", Type: "Asset"},
					Fields: map[string]any{
						"title": "Side",
						"file":  map[string]any{"url": "https://images.example.com/side.jpg"},
					},
				},
			},
		},
	}

	r := content.NewResolver(resp)
	p := transformProduct(resp.Items[0], r, relatedDepth)

	assert.Equal(t, "prod-1", p.ID)
	assert.Equal(t, "Headphones", p.Name)
	assert.Equal(t, 299.99, p.Price)

	// Featured image first, protocol-relative URL made absolute.
	require.Len(t, p.Images, 2)
	assert.Equal(t, "https://images.example.com/front.jpg", p.Images[0].URL)
	require.NotNil(t, p.Images[0].Width)
	assert.Equal(t, 800, *p.Images[0].Width)
	assert.Equal(t, "https://images.example.com/side.jpg", p.Images[1].URL)

	// Related products are mapped one level deep even though the CMS graph
	// here is cyclic (prod-1 <-> prod-2).
	require.Len(t, p.RelatedProducts, 1)
	assert.Equal(t, "prod-2", p.RelatedProducts[0].ID)
	assert.Empty(t, p.RelatedProducts[0].RelatedProducts)
}

func TestTransformCategory_ParentDepthCapped(t *testing.T) {
	resp := &content.EntriesResponse{
		Items: []content.Entry{{
			Sys: content.Sys{ID: "cat-1", Type: "Entry"},
			Fields: map[string]any{
				"name":           "Sneakers",
				"slug":           "sneakers",
				"parentCategory": entryLink("cat-2"),
			},
		}},
		Includes: content.Includes{
			Entry: []content.Entry{{
				Sys: content.Sys{ID: "cat-2", Type: "Entry"},
				Fields: map[string]any{
					"name":           "Shoes",
					"slug":           "shoes",
					"parentCategory": entryLink("cat-1"),
				},
			}},
		},
	}

	r := content.NewResolver(resp)
	c := transformCategory(resp.Items[0], r, categoryParentDepth)

	require.NotNil(t, c.Parent)
	assert.Equal(t, "cat-2", c.Parent.ID)
	// The cycle back to cat-1 is cut off by the depth cap.
	assert.Nil(t, c.Parent.Parent)
}

func TestTransformAsset_MissingFileIsHarmless(t *testing.T) {
	img := transformAsset(content.Asset{
		Sys:    content.Sys{ID: "a", Type: "Asset"},
		Fields: map[string]any{"title": "broken"},
	})
	assert.Equal(t, "broken", img.Title)
	assert.Empty(t, img.URL)
}
