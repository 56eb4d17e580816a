// Package prompt renders the model-facing instruction set for a survival
// evaluation. Assembly is pure string work: identical input produces an
// identical prompt, which the response cache upstream relies on.
package prompt

import (
	"fmt"
	"strings"

	"github.com/doomlabs/apocalypse-meter/internal/i18n"
)

// SystemMessage is the system turn sent with every evaluation request.
const SystemMessage = "You are generating apocalypse survival evaluations in the EXACT comedic style of Bill Burr - direct, cynical, exasperated rants with ALL CAPS for emphasis and lots of rhetorical questions. Every section must sound like Bill Burr's stand-up comedy."

const exampleJSON = `{
  "analysis": "Answer 1 (hiding in the basement): Oh my GOD, the BASEMENT?! What are you, outta your mind?! That's like jumping into a shark tank with a paper cut! Answer 2 (kitchen knife): A KITCHEN KNIFE?! Are you serious?! What are you gonna do, make the zombies a salad before they eat your face?! Answer 3 (suburban house): Oh, FANTASTIC choice! Nothing says 'safety' like being surrounded by 500 neighbors who ALL become zombies! Answer 4 (cooking skills): COOKING?! You're worried about COOKING?! That's like being on the Titanic and asking if they have WiFi! Answer 5 (compassion): Oh, that's just BEAUTIFUL. Your loved one is trying to EAT YOU and you're having a moment. Unbelievable.",
  "deathScene": "So there you are, day THREE, hiding in your BRILLIANT basement fortress with your AMAZING kitchen knife, when your infected neighbor - who by the way, used to bring you Christmas cookies - smashes through your window. And what do you do? You HESITATE! Because OF COURSE YOU DO! What are ya, STUPID?! Oh, let me just have a MOMENT with this ZOMBIE who wants to CHEW MY FACE OFF! GENIUS! And that's it! That's your story! They don't even finish eating you because even ZOMBIES have standards! Un-BELIEVABLE!",
  "score": 2,
  "rationale": "Your survival plan is so BAD it actually HELPS the apocalypse, you're basically on the ZOMBIE RECRUITING TEAM at this point!",
  "survivalTimeMs": 259200000
}`

// Build renders the user turn for a chat completion from the scenario's
// display name and the answers in question order. Answers are enumerated
// 1-indexed; every answer appears exactly once.
func Build(scenarioName string, answers []string, locale i18n.Locale) string {
	var b strings.Builder

	b.WriteString("You are evaluating survival chances for an apocalypse scenario. Channel comedian Bill Burr's style throughout ALL sections - use his direct, cynical, exasperated rants about the absurdity of people's choices, with escalating frustration, rhetorical questions, and frequent ALL CAPS for emphasis.\n\n")

	b.WriteString("Given the following:\n")
	fmt.Fprintf(&b, "Scenario: %s\n", scenarioName)
	b.WriteString("Answers:\n")
	for i, answer := range answers {
		fmt.Fprintf(&b, "%d. %s\n", i+1, answer)
	}

	b.WriteString("\nProvide a structured survival evaluation with the following sections, ALL in Bill Burr's comedic voice:\n\n")
	b.WriteString("1. ANALYSIS: Channel Bill Burr's direct, no-nonsense style as you analyze each answer. Express exasperated disbelief at their choices, use rhetorical questions, and build up a rant about how each answer is worse than the last. Reference the answers by number.\n\n")
	b.WriteString("2. DEATH_SCENE: Write this EXACTLY like Bill Burr would describe it in a stand-up routine - with his characteristic rants, interrupting himself, using ALL CAPS for emphasis, and expressing complete disbelief at the user's stupidity. Include his typical phrases like \"OH MY GOD\" or \"WHAT ARE YOU DOING?!\" Make it a comedic, absurd scene showing the inevitable consequences of their terrible choices.\n\n")
	b.WriteString("3. SCORE_AND_RATIONALE: Write a one-sentence rationale in pure Bill Burr style - cynical, blunt, with his signature exasperated tone. Make it sound like something he would yell during a podcast rant. Include ALL CAPS for emphasis.\n\n")
	b.WriteString("4. SURVIVAL_TIME: Estimate how long this person survives, in milliseconds, as the numeric field \"survivalTimeMs\".\n\n")

	if locale == i18n.LocaleZhTW {
		b.WriteString("Write all field values in Traditional Chinese (繁體中文) while keeping the JSON field names in English.\n\n")
	}

	b.WriteString("Your response must be a single JSON object with exactly the fields \"analysis\", \"deathScene\", \"score\", \"rationale\" and \"survivalTimeMs\". Format your response EXACTLY like this example, with no other text:\n")
	b.WriteString(exampleJSON)

	return b.String()
}
