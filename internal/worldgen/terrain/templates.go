package terrain

import "worldforge/internal/worldgen/config"

// GetTemplate returns the built-in DSL script for a template id.
// Height/count arguments are plain shape-unit literals or ranges;
// position arguments carry the percent suffix the grammar requires.
func GetTemplate(id config.TemplateID) string {
	switch id {
	case config.TemplateVolcano:
		return `# single towering central cone ringed by lower flanks
Hill 1 70-90 45-55% 45-55%
Hill 3 20-35 30-70% 30-70%
Pit 2 10-20 10-90% 10-90%
Smooth 2
Mask -1.3
`
	case config.TemplateLowIsland:
		return `# scattered small islands over mostly open water
Hill 6 25-45 10-90% 10-90%
Hill 4 15-25 10-90% 10-90%
Pit 4 20-30 10-90% 10-90%
Smooth 1
Mask -2
`
	case config.TemplateArchipelago:
		return `# many small disconnected landmasses
Hill 10 20-35 5-95% 5-95%
Pit 8 20-35 5-95% 5-95%
Strait 2 horizontal
Strait 2 vertical
Smooth 1
`
	case config.TemplateContinents:
		return `# two or three large continental masses
Hill 4 45-65 15-40% 20-80%
Hill 4 45-65 60-85% 20-80%
Range 3 35-50 20-80% 20-80%
Pit 6 25-40 10-90% 10-90%
Strait 3 vertical
Smooth 2
`
	case config.TemplatePangea:
		return `# one dominant supercontinent
Hill 8 50-70 25-75% 25-75%
Range 5 30-45 20-80% 20-80%
Pit 3 20-30 5-30% 5-95%
Pit 3 20-30 70-95% 5-95%
Smooth 2
`
	case config.TemplateHighIsland:
		return `# one large mountainous island
Hill 5 55-75 35-65% 35-65%
Range 3 30-45 25-75% 25-75%
Pit 5 25-35 5-95% 5-95%
Smooth 1
Mask -1.6
`
	case config.TemplatePeninsula:
		return `# landmass hanging off one map edge
Hill 6 45-65 20-55% 5-40%
Range 2 30-40 25-60% 20-60%
Pit 6 25-40 10-90% 50-95%
Smooth 1
`
	case config.TemplateShattered:
		return `# heavily fragmented terrain, many small landmasses and inland seas
Hill 12 20-35 5-95% 5-95%
Trough 6 25-40 5-95% 5-95%
Pit 10 20-30 5-95% 5-95%
Strait 2 horizontal
Strait 2 vertical
Smooth 1
`
	case config.TemplateOldWorld:
		return `# broad weathered continents with long eroded mountain chains
Range 6 25-40 15-85% 15-85%
Hill 5 35-50 15-85% 15-85%
Pit 5 20-35 10-90% 10-90%
Smooth 3
Add 50 land
`
	default:
		return "Hill 3 40-60 30-70% 30-70%\nSmooth 1\n"
	}
}
