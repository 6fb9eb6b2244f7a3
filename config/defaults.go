package config

const defaultRepoBranch = "v0.10"

// DefaultGames returns the records for every game supported out of the box.
func DefaultGames() []GameSettings {
	return []GameSettings{
		{
			Type:        GameTypeOblivion,
			Name:        "TES IV: Oblivion",
			FolderName:  "Oblivion",
			Master:      "Oblivion.esm",
			RepoURL:     "https://github.com/loot/oblivion.git",
			RepoBranch:  defaultRepoBranch,
			RegistryKey: `Software\Bethesda Softworks\Oblivion\Installed Path`,
		},
		{
			Type:        GameTypeSkyrim,
			Name:        "TES V: Skyrim",
			FolderName:  "Skyrim",
			Master:      "Skyrim.esm",
			RepoURL:     "https://github.com/loot/skyrim.git",
			RepoBranch:  defaultRepoBranch,
			RegistryKey: `Software\Bethesda Softworks\Skyrim\Installed Path`,
		},
		{
			Type:        GameTypeFallout3,
			Name:        "Fallout 3",
			FolderName:  "Fallout3",
			Master:      "Fallout3.esm",
			RepoURL:     "https://github.com/loot/fallout3.git",
			RepoBranch:  defaultRepoBranch,
			RegistryKey: `Software\Bethesda Softworks\Fallout3\Installed Path`,
		},
		{
			Type:        GameTypeFalloutNV,
			Name:        "Fallout: New Vegas",
			FolderName:  "FalloutNV",
			Master:      "FalloutNV.esm",
			RepoURL:     "https://github.com/loot/falloutnv.git",
			RepoBranch:  defaultRepoBranch,
			RegistryKey: `Software\Bethesda Softworks\FalloutNV\Installed Path`,
		},
		{
			Type:        GameTypeFallout4,
			Name:        "Fallout 4",
			FolderName:  "Fallout4",
			Master:      "Fallout4.esm",
			RepoURL:     "https://github.com/loot/fallout4.git",
			RepoBranch:  defaultRepoBranch,
			RegistryKey: `Software\Bethesda Softworks\Fallout4\Installed Path`,
		},
		{
			Type:        GameTypeSkyrimSE,
			Name:        "TES V: Skyrim Special Edition",
			FolderName:  "Skyrim Special Edition",
			Master:      "Skyrim.esm",
			RepoURL:     "https://github.com/loot/skyrimse.git",
			RepoBranch:  defaultRepoBranch,
			RegistryKey: `Software\Bethesda Softworks\Skyrim Special Edition\Installed Path`,
		},
	}
}
