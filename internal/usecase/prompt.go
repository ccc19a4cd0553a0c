package usecase

import (
	"strconv"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// maxCatalogProducts caps how many catalog entries are serialized into the
// prompt to stay within the provider's input limits.
const maxCatalogProducts = 20

const promptPreamble = "You are a product recommendation expert for an eCommerce store.\n" +
	"A user has specified some preferences and has browsed a few products.\n" +
	"Your job is to recommend 5 products from the catalog, giving clear reasoning and a confidence score (1-10).\n\n"

const promptOutputFormat = "\nBased on the above, recommend 5 products. Format your response as a JSON array like:\n" +
	"[\n" +
	"  {\n" +
	"    \"product_id\": \"prod001\",\n" +
	"    \"explanation\": \"Great fit for the user's interest in electronics and budget.\",\n" +
	"    \"score\": 9\n" +
	"  },\n" +
	"  ...\n" +
	"]"

// buildRecommendationPrompt constructs the full user-role prompt from the
// preferences, the resolved browsing history, and a filtered slice of the
// catalog. Output is deterministic for identical inputs: no randomness, no
// time dependence, stable ordering throughout.
func buildRecommendationPrompt(prefs domain.UserPreferences, browsed, all []domain.Product) string {
	var b strings.Builder

	b.WriteString(promptPreamble)

	b.WriteString("User Preferences:\n")
	b.WriteString("- Price range: " + orAll(prefs.PriceRange) + "\n")
	b.WriteString("- Categories: " + orAny(prefs.Categories) + "\n")
	b.WriteString("- Brands: " + orAny(prefs.Brands) + "\n")

	// The history section is always present so the model never has to
	// guess whether it was omitted or empty.
	if len(browsed) == 0 {
		b.WriteString("\nBrowsing History: None\n")
	} else {
		b.WriteString("\nBrowsing History:\n")
		for _, p := range browsed {
			writeBrowsedProduct(&b, p)
		}
	}

	b.WriteString("\nProduct Catalog:\n")
	for _, p := range filterCatalog(prefs, all) {
		b.WriteString("- ID: " + p.ID +
			", Name: " + p.Name +
			", Category: " + p.Category +
			", Brand: " + p.Brand +
			", Price: $" + formatPrice(p.Price) + "\n")
	}

	b.WriteString(promptOutputFormat)

	return b.String()
}

// writeBrowsedProduct emits the detailed per-product block used for
// browsing history: the model gets much richer context for products the
// user actually looked at than for the rest of the catalog.
func writeBrowsedProduct(b *strings.Builder, p domain.Product) {
	b.WriteString("- " + p.Name +
		" | Brand: " + p.Brand +
		" | Category: " + categoryPath(p) +
		" | Price: $" + formatPrice(p.Price) +
		" | Rating: " + strconv.FormatFloat(p.Rating, 'f', -1, 64) + "\n")
	if p.Description != "" {
		b.WriteString("  Description: " + p.Description + "\n")
	}
	if len(p.Features) > 0 {
		b.WriteString("  Features: " + strings.Join(p.Features, "; ") + "\n")
	}
	if len(p.Tags) > 0 {
		b.WriteString("  Tags: " + strings.Join(p.Tags, ", ") + "\n")
	}
}

// filterCatalog keeps products matching the stated category, brand and
// price constraints, preserving catalog order, capped at
// maxCatalogProducts. An unparsable price range disables the price
// constraint rather than failing.
func filterCatalog(prefs domain.UserPreferences, all []domain.Product) []domain.Product {
	minPrice, maxPrice, priceBounded := parsePriceRange(prefs.PriceRange)

	filtered := make([]domain.Product, 0, maxCatalogProducts)
	for _, p := range all {
		if len(prefs.Categories) > 0 && !containsString(prefs.Categories, p.Category) {
			continue
		}
		if len(prefs.Brands) > 0 && !containsString(prefs.Brands, p.Brand) {
			continue
		}
		if priceBounded && (p.Price < minPrice || p.Price > maxPrice) {
			continue
		}
		filtered = append(filtered, p)
		if len(filtered) == maxCatalogProducts {
			break
		}
	}
	return filtered
}

// parsePriceRange parses a "min-max" range string. "all", empty, or any
// malformed value reports unbounded (ok=false), never an error.
func parsePriceRange(priceRange string) (minPrice, maxPrice float64, ok bool) {
	if priceRange == "" || priceRange == "all" {
		return 0, 0, false
	}
	parts := strings.SplitN(priceRange, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	minPrice, errMin := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	maxPrice, errMax := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errMin != nil || errMax != nil {
		return 0, 0, false
	}
	return minPrice, maxPrice, true
}

// estimateTokens approximates the provider's token count for a prompt.
// Rule of thumb: one token per four characters.
func estimateTokens(s string) int {
	return len(s) / 4
}

func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

func categoryPath(p domain.Product) string {
	if p.Subcategory != "" {
		return p.Category + " > " + p.Subcategory
	}
	return p.Category
}

func orAll(s string) string {
	if s == "" {
		return "all"
	}
	return s
}

func orAny(values []string) string {
	if len(values) == 0 {
		return "any"
	}
	return strings.Join(values, ", ")
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
