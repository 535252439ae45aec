package identify

const identifyPrompt = `Identify this liquor bottle and return ONLY valid JSON (no markdown, no explanation) with these fields:
{
  "brand": "Brand name",
  "productName": "Full product name",
  "category": "whisky|gin|rum|vodka|tequila|brandy|liqueur|wine|beer|other",
  "subCategory": "e.g., bourbon, single malt, spiced rum (optional)",
  "countryOfOrigin": "Country (optional)",
  "region": "Specific region like Kentucky, Speyside (optional)",
  "abv": numeric ABV percentage if visible (optional),
  "sizeMl": bottle size in ml if visible (optional),
  "description": "Brief description of this product",
  "tastingNotes": "Typical tasting notes for this product",
  "confidence": "high|medium|low based on how clearly you can identify it"
}

If you cannot identify a liquor bottle in the image, return:
{"error": "Could not identify a liquor bottle in this image"}`
