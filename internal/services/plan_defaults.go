package services

import "strings"

func normalizePlanName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// defaultPlans is the built-in catalog, used unless PLANS_FILE overrides it.
func defaultPlans() []*Plan {
	return []*Plan{softwareEngineeringPlan(), aiSpecializationPlan(), mteMinorPlan()}
}

func softwareEngineeringPlan() *Plan {
	return &Plan{
		Name:    "Software Engineering (BSE)",
		Aliases: []string{"SE major", "Software Engineering"},
		RequiredCourses: []string{
			// 1A
			"CS 137", "CHE 102", "MATH 115", "MATH 117", "MATH 135", "SE 101",
			// 1B
			"CS 138", "ECE 124", "ECE 140", "ECE 192", "MATH 119", "SE 102",
			// 2A
			"CS 241", "ECE 222", "SE 201", "SE 212", "STAT 206",
			// 2B
			"CS 240", "CS 247", "CS 348", "MATH 239", "SE 202",
			// 3A
			"CS 341", "MATH 213", "SE 301", "SE 350", "SE 464", "SE 465",
			// 3B
			"CS 343", "ECE 358", "SE 302", "SE 380", "SE 463",
			// 4A/4B project and seminar
			"SE 401", "SE 402", "GENE 403", "GENE 404", "SE 490", "SE 491",
		},
		CommunicationRequirement: &ChooseList{
			Choose: 1,
			Courses: []string{
				"COMMST 100", "COMMST 223", "EMLS 101R", "EMLS 102R", "EMLS 129R",
				"ENGL 109", "ENGL 119", "ENGL 129R", "ENGL 209", "ENGL 210E",
			},
		},
		ComplementaryLists: map[string]ChooseList{
			"A": {Choose: 1, Courses: []string{"COMMST 100", "ENGL 109"}},
			"C": {Choose: 1, Courses: []string{"PHIL 224", "HUMN 101"}},
		},
		NaturalScience: &ChooseList{
			Choose: 3,
			Courses: []string{
				"AMATH 382", "BIOL 110", "BIOL 130", "BIOL 130L", "BIOL 150", "BIOL 165", "BIOL 211",
				"BIOL 220", "BIOL 239", "BIOL 240", "BIOL 240L", "BIOL 241", "BIOL 273", "BIOL 280",
				"BIOL 365", "BIOL 373", "BIOL 373L", "BIOL 376", "BIOL 382", "BIOL 469", "BIOL 476",
				"BIOL 489", "CHE 161", "CHEM 123", "CHEM 123L", "CHEM 209", "CHEM 237", "CHEM 237L",
				"CHEM 254", "CHEM 262", "CHEM 262L", "CHEM 266", "CHEM 356", "CS 482", "EARTH 121",
				"EARTH 122", "EARTH 123", "EARTH 221", "EARTH 270", "EARTH 281", "ECE 106", "ECE 231",
				"ECE 305", "ECE 403", "ECE 404", "ENVE 275", "ENVS 200", "NE 222", "PHYS 122", "PHYS 124",
				"PHYS 175", "PHYS 233", "PHYS 234", "PHYS 263", "PHYS 275", "PHYS 280", "PHYS 334", "PHYS 335",
				"PHYS 375", "PHYS 380", "PHYS 468", "PSYCH 207", "PSYCH 261", "PSYCH 306", "PSYCH 307",
				"SCI 200", "SCI 201", "SCI 238", "SCI 250",
			},
		},
		TechnicalElectives: map[string]ChooseList{
			"list1": {Courses: []string{
				"AMATH 242", "AMATH 449", "CS 360", "CS 365", "CS 370", "CS 371", "CS 442", "CS 444",
				"CS 448", "CS 450", "CS 451", "CS 452", "CS 453", "CS 454", "CS 457", "CS 459", "CS 462",
				"CS 466", "CS 479", "CS 480", "CS 484", "CS 485", "CS 486", "CS 487", "CS 488", "CS 489",
			}},
			"list2": {Courses: []string{
				"ECE 313", "ECE 320", "ECE 327", "ECE 340", "ECE 405A", "ECE 405B", "ECE 405C", "ECE 405D",
				"ECE 409", "ECE 416", "ECE 417", "ECE 423", "ECE 454", "ECE 455", "ECE 457A", "ECE 457B",
				"ECE 457C", "ECE 458", "ECE 459", "ECE 481", "ECE 486", "ECE 488", "ECE 493", "ECE 495",
			}},
			"list3": {Courses: []string{
				"BIOL 487", "CO 331", "CO 342", "CO 351", "CO 353", "CO 367", "CO 456", "CO 481", "CO 485",
				"CO 487", "CS 467", "MSE 343", "MSE 446", "MSE 543", "MTE 544", "MTE 546", "PHYS 467",
				"SE 498", "STAT 440", "STAT 441", "STAT 442", "STAT 444", "SYDE 533", "SYDE 543", "SYDE 548",
				"SYDE 552", "SYDE 556", "SYDE 575",
			}},
		},
		SustainabilityOptions: []string{
			"BIOL 489", "EARTH 270", "ENBUS 102", "ENBUS 211", "ENGL 248", "ENVS 105", "ENVS 200", "ENVS 205",
			"ENVS 220", "ERS 215", "ERS 225", "ERS 253", "ERS 270", "ERS 294", "ERS 310", "ERS 316", "ERS 320",
			"ERS 328", "ERS 361", "ERS 370", "ERS 372", "ERS 404", "GEOG 203", "GEOG 207", "GEOG 225", "GEOG 361",
			"GEOG 459", "PACS 310", "PHIL 224", "PLAN 451", "PSCI 432", "RCS 285", "SCI 200", "SCI 201",
		},
	}
}

func aiSpecializationPlan() *Plan {
	return &Plan{
		Name:            "AI specialization",
		RequiredCourses: []string{"CS 486", "CS 484", "MATH 239"},
	}
}

func mteMinorPlan() *Plan {
	return &Plan{
		Name:            "MTE minor",
		RequiredCourses: []string{"MTE 121", "MTE 122"},
	}
}
