package sentiment

// valence holds mean human-rated valence per word on a -4..4 scale. The set is
// tuned to grievance and welfare vocabulary found in community feedback.
var valence = map[string]float64{
	// positive
	"good":          1.9,
	"great":         3.1,
	"excellent":     2.7,
	"amazing":       2.8,
	"wonderful":     2.7,
	"awesome":       3.1,
	"best":          3.2,
	"better":        1.9,
	"happy":         2.7,
	"glad":          2.0,
	"pleased":       1.9,
	"satisfied":     1.8,
	"grateful":      2.0,
	"thankful":      2.0,
	"thank":         1.5,
	"thanks":        1.9,
	"love":          3.2,
	"like":          1.5,
	"nice":          1.8,
	"helpful":       1.8,
	"helping":       1.7,
	"help":          1.7,
	"helped":        1.6,
	"support":       1.7,
	"supported":     1.7,
	"supportive":    1.9,
	"improve":       1.9,
	"improved":      2.1,
	"improvement":   1.6,
	"improving":     1.8,
	"benefit":       2.0,
	"benefits":      1.8,
	"beneficial":    1.9,
	"success":       2.7,
	"successful":    2.8,
	"progress":      1.8,
	"transparent":   1.2,
	"fair":          1.3,
	"safe":          1.9,
	"secure":        1.4,
	"clean":         1.7,
	"hope":          1.9,
	"hopeful":       2.3,
	"welcome":       2.0,
	"appreciate":    1.7,
	"appreciated":   2.3,
	"protect":       1.6,
	"protected":     1.9,
	"resolved":      1.1,
	"working":       0.6,
	"easy":          1.9,
	"easier":        1.8,
	"effective":     2.1,
	"efficient":     1.8,
	"fortunate":     1.9,
	"positive":      2.6,
	"proud":         2.1,
	"relief":        2.1,
	"trust":         2.3,
	"want":          0.3,
	"clear":         1.6,
	"fine":          0.8,
	"okay":          0.9,
	"ok":            1.2,
	"empower":       1.8,
	"empowered":     1.9,
	"prosper":       2.2,
	"healthy":       1.7,
	"enjoy":         2.2,
	"peaceful":      2.2,
	"peace":         2.5,
	"justice":       2.4,
	"rich":          2.6,
	"strong":        2.3,
	"useful":        1.9,
	"opportunity":   1.8,
	"opportunities": 1.6,
	"care":          2.2,
	"kind":          2.4,
	"friendly":      2.2,

	// negative
	"bad":          -2.5,
	"worse":        -2.1,
	"worst":        -3.1,
	"terrible":     -2.1,
	"horrible":     -2.5,
	"awful":        -2.0,
	"poor":         -2.1,
	"sad":          -2.1,
	"unhappy":      -1.8,
	"angry":        -2.3,
	"upset":        -1.6,
	"worried":      -1.2,
	"worry":        -1.9,
	"afraid":       -2.2,
	"fear":         -2.2,
	"scared":       -2.2,
	"problem":      -1.7,
	"problems":     -1.7,
	"issue":        -0.6,
	"issues":       -0.6,
	"trouble":      -1.7,
	"difficult":    -1.5,
	"difficulty":   -1.4,
	"hard":         -0.4,
	"struggle":     -1.7,
	"struggling":   -1.8,
	"suffer":       -2.1,
	"suffering":    -2.1,
	"scarcity":     -1.5,
	"shortage":     -1.4,
	"lack":         -1.3,
	"lacking":      -1.4,
	"missing":      -1.2,
	"illegal":      -2.6,
	"corrupt":      -3.0,
	"corruption":   -2.8,
	"unfair":       -2.1,
	"danger":       -2.4,
	"dangerous":    -2.1,
	"crisis":       -3.1,
	"emergency":    -1.6,
	"urgent":       -0.5,
	"critical":     -1.3,
	"threat":       -2.4,
	"threatened":   -2.0,
	"damage":       -2.2,
	"damaged":      -1.9,
	"destroyed":    -3.4,
	"destroy":      -2.8,
	"broken":       -2.1,
	"dirty":        -2.0,
	"delay":        -1.3,
	"delayed":      -0.9,
	"denied":       -1.9,
	"deny":         -1.4,
	"ignored":      -1.3,
	"neglect":      -2.0,
	"neglected":    -2.4,
	"fail":         -2.5,
	"failed":       -2.3,
	"failure":      -2.3,
	"sick":         -2.3,
	"disease":      -2.0,
	"pain":         -2.3,
	"hunger":       -2.3,
	"hungry":       -1.8,
	"loss":         -1.3,
	"lost":         -1.3,
	"harm":         -2.5,
	"harassment":   -2.5,
	"exploited":    -2.0,
	"exploitation": -2.2,
	"complaint":    -1.5,
	"complain":     -1.5,
	"unsafe":       -2.2,
	"useless":      -1.8,
	"hate":         -2.7,
	"disappointed": -1.9,
	"frustrated":   -2.4,
	"helpless":     -2.0,
	"hopeless":     -2.0,
	"unemployed":   -1.6,
	"death":        -2.9,
	"dead":         -3.3,
	"dying":        -2.9,
	"killed":       -3.5,
	"flood":        -1.4,
	"drought":      -2.0,
	"polluted":     -2.0,
	"pollution":    -2.0,
	"bribe":        -1.8,
	"cheated":      -2.2,
	"wrong":        -2.1,
	"no":           -1.2,
}

// boosters raise or dampen the intensity of the next sentiment word.
var boosters = map[string]float64{
	"absolutely":   boostIncr,
	"completely":   boostIncr,
	"deeply":       boostIncr,
	"enormously":   boostIncr,
	"entirely":     boostIncr,
	"especially":   boostIncr,
	"extremely":    boostIncr,
	"greatly":      boostIncr,
	"highly":       boostIncr,
	"hugely":       boostIncr,
	"incredibly":   boostIncr,
	"really":       boostIncr,
	"severely":     boostIncr,
	"so":           boostIncr,
	"terribly":     boostIncr,
	"totally":      boostIncr,
	"truly":        boostIncr,
	"very":         boostIncr,
	"most":         boostIncr,
	"more":         boostIncr,
	"much":         boostIncr,
	"badly":        boostIncr,
	"almost":       boostDecr,
	"barely":       boostDecr,
	"hardly":       boostDecr,
	"kinda":        boostDecr,
	"less":         boostDecr,
	"little":       boostDecr,
	"marginally":   boostDecr,
	"occasionally": boostDecr,
	"partly":       boostDecr,
	"scarcely":     boostDecr,
	"slightly":     boostDecr,
	"somewhat":     boostDecr,
	"sometimes":    boostDecr,
}

var negations = map[string]bool{
	"not": true, "no": true, "never": true, "none": true, "nothing": true,
	"nobody": true, "nowhere": true, "neither": true, "nor": true, "without": true,
	"cannot": true, "cant": true, "can't": true, "dont": true, "don't": true,
	"doesnt": true, "doesn't": true, "didnt": true, "didn't": true,
	"isnt": true, "isn't": true, "arent": true, "aren't": true,
	"wasnt": true, "wasn't": true, "werent": true, "weren't": true,
	"wont": true, "won't": true, "wouldnt": true, "wouldn't": true,
	"shouldnt": true, "shouldn't": true, "couldnt": true, "couldn't": true,
	"havent": true, "haven't": true, "hasnt": true, "hasn't": true,
	"hadnt": true, "hadn't": true, "aint": true, "ain't": true,
}
