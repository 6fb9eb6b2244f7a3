package locale

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Message keys. The English text doubles as the key.
const (
	MsgDataDirCreateFailed = "Error: Could not create data directory. %v"
	MsgSettingsParseFailed = "Error: Settings parsing failed. %v"
	MsgGameInitFailed      = "Error: Game-specific settings could not be initialised. %v"
	MsgNoGamesDetected     = "None of the supported games were detected."
	MsgCurrentGame         = "Current game: %s"
	MsgGameSelected        = "Selected %s"
)

var messages = func() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for _, key := range []string{
		MsgDataDirCreateFailed, MsgSettingsParseFailed, MsgGameInitFailed,
		MsgNoGamesDetected, MsgCurrentGame, MsgGameSelected,
	} {
		mustSet(b, language.English, key, key)
	}

	mustSet(b, language.German, MsgDataDirCreateFailed, "Fehler: Datenverzeichnis konnte nicht erstellt werden. %v")
	mustSet(b, language.German, MsgSettingsParseFailed, "Fehler: Einstellungen konnten nicht gelesen werden. %v")
	mustSet(b, language.German, MsgGameInitFailed, "Fehler: Spielspezifische Einstellungen konnten nicht initialisiert werden. %v")
	mustSet(b, language.German, MsgNoGamesDetected, "Keines der unterstützten Spiele wurde gefunden.")
	mustSet(b, language.German, MsgCurrentGame, "Aktuelles Spiel: %s")
	mustSet(b, language.German, MsgGameSelected, "%s ausgewählt")

	mustSet(b, language.French, MsgDataDirCreateFailed, "Erreur : impossible de créer le dossier de données. %v")
	mustSet(b, language.French, MsgSettingsParseFailed, "Erreur : échec de la lecture des paramètres. %v")
	mustSet(b, language.French, MsgGameInitFailed, "Erreur : les paramètres du jeu n'ont pas pu être initialisés. %v")
	mustSet(b, language.French, MsgNoGamesDetected, "Aucun des jeux pris en charge n'a été détecté.")
	mustSet(b, language.French, MsgCurrentGame, "Jeu actuel : %s")
	mustSet(b, language.French, MsgGameSelected, "%s sélectionné")

	return b
}()
