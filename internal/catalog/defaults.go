package catalog

import "time"

// Default returns the salon's configured services and staff.
func Default() *Catalog {
	return New(DefaultServices(), DefaultStaff())
}

// DefaultServices lists the services offered by the salon.
func DefaultServices() []Service {
	return []Service{
		{ID: "corte", Name: "Corte Feminino", Duration: 60 * time.Minute, Price: 45, Skill: "corte"},
		{ID: "escova", Name: "Escova", Duration: 45 * time.Minute, Price: 35, Skill: "escova"},
		{ID: "tintura", Name: "Tintura", Duration: 120 * time.Minute, Price: 120, Skill: "tintura"},
		{ID: "mechas", Name: "Mechas", Duration: 180 * time.Minute, Price: 180, Skill: "mechas"},
		{ID: "hidratacao", Name: "Hidratação", Duration: 90 * time.Minute, Price: 60, Skill: "hidratacao"},
		{ID: "progressiva", Name: "Progressiva", Duration: 240 * time.Minute, Price: 200, Skill: "progressiva"},
		{ID: "sobrancelha", Name: "Sobrancelha", Duration: 30 * time.Minute, Price: 25, Skill: "sobrancelha"},
		{ID: "manicure", Name: "Manicure", Duration: 60 * time.Minute, Price: 30, Skill: "manicure"},
		{ID: "pedicure", Name: "Pedicure", Duration: 60 * time.Minute, Price: 35, Skill: "pedicure"},
		{ID: "unhas_gel", Name: "Unhas em Gel", Duration: 90 * time.Minute, Price: 80, Skill: "unhas_gel"},
	}
}

// DefaultStaff lists the salon's professionals and their schedules.
func DefaultStaff() []StaffMember {
	monToSat := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday,
		time.Thursday, time.Friday, time.Saturday,
	}
	tueToSat := []time.Weekday{
		time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday,
	}
	return []StaffMember{
		{
			ID:          "staff_1",
			Name:        "Marina Souza",
			Skills:      []string{"corte", "tintura", "mechas"},
			WorkingDays: monToSat,
			StartHour:   8,
			EndHour:     18,
			Efficiency:  0.95,
		},
		{
			ID:          "staff_2",
			Name:        "Carla Santos",
			Skills:      []string{"escova", "hidratacao", "progressiva"},
			WorkingDays: tueToSat,
			StartHour:   9,
			EndHour:     17,
			Efficiency:  0.90,
		},
		{
			ID:          "staff_3",
			Name:        "Ana Lima",
			Skills:      []string{"manicure", "pedicure", "sobrancelha", "unhas_gel"},
			WorkingDays: monToSat,
			StartHour:   8,
			EndHour:     16,
			Efficiency:  0.88,
		},
	}
}
