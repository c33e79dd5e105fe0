package model

import "time"

// Seed is the default catalog used when no snapshot exists.
func Seed(now time.Time) []Facility {
	return []Facility{
		{
			ID:          "1",
			Name:        "Auditorium Utama",
			Capacity:    500,
			Location:    "Gedung A Lantai 1",
			Status:      StatusAvailable,
			Description: "Auditorium modern dengan fasilitas multimedia lengkap untuk acara besar kampus",
			Image:       "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=800&q=80",
			Features:    []string{"AC", "Proyektor 4K", "Sound System", "Lighting Stage", "WiFi"},
			CreatedAt:   now,
		},
		{
			ID:          "2",
			Name:        "Ruang Seminar 1",
			Capacity:    100,
			Location:    "Gedung B Lantai 3",
			Status:      StatusAvailable,
			Description: "Ruang seminar dengan layout fleksibel untuk diskusi dan presentasi",
			Image:       "https://images.unsplash.com/photo-1517502884422-41eaead166d4?w=800&q=80",
			Features:    []string{"AC", "Proyektor", "Whiteboard", "WiFi", "Meja Lipat"},
			CreatedAt:   now,
		},
		{
			ID:          "3",
			Name:        "Lab Komputer",
			Capacity:    50,
			Location:    "Gedung C Lantai 2",
			Status:      StatusAvailable,
			Description: "Laboratorium komputer dengan spesifikasi tinggi untuk pembelajaran dan riset",
			Image:       "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&q=80",
			Features:    []string{"50 PC High-End", "AC", "Proyektor", "WiFi Gigabit", "Software Development"},
			CreatedAt:   now,
		},
		{
			ID:          "4",
			Name:        "Meeting Room Executive",
			Capacity:    20,
			Location:    "Gedung D Lantai 5",
			Status:      StatusAvailable,
			Description: "Ruang meeting eksklusif dengan pemandangan kota untuk pertemuan penting",
			Image:       "https://images.unsplash.com/photo-1497366216548-37526070297c?w=800&q=80",
			Features:    []string{"AC", "Smart TV", "Video Conference", "Pantry", "WiFi Premium"},
			CreatedAt:   now,
		},
		{
			ID:          "5",
			Name:        "Lapangan Olahraga Indoor",
			Capacity:    200,
			Location:    "Gedung Sport Center",
			Status:      StatusAvailable,
			Description: "Fasilitas olahraga indoor multifungsi untuk berbagai jenis aktivitas",
			Image:       "https://images.unsplash.com/photo-1546483875-ad9014c88eba?w=800&q=80",
			Features:    []string{"Basket Court", "Futsal Court", "AC", "Tribun", "Locker Room"},
			CreatedAt:   now,
		},
		{
			ID:          "6",
			Name:        "Ruang Kelas Multimedia",
			Capacity:    40,
			Location:    "Gedung E Lantai 2",
			Status:      StatusAvailable,
			Description: "Kelas modern dengan teknologi pembelajaran interaktif",
			Image:       "https://images.unsplash.com/photo-1562774053-701939374585?w=800&q=80",
			Features:    []string{"AC", "Interactive Board", "Tablet PC", "WiFi", "Comfortable Seating"},
			CreatedAt:   now,
		},
	}
}
