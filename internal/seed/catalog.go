package seed

import (
	"time"

	"itinfo/internal/models"
)

type catalogEntry struct {
	name, brand, category, sub string
	price                      int
	released                   string
	specs                      string
}

var catalog = []catalogEntry{
	{"Galaxy S25 Ultra", "Samsung", models.CategorySmartphone, "안드로이드", 1698400, "2025-02-07", `{"display":"6.9in","chip":"Snapdragon 8 Elite","ram":"12GB"}`},
	{"Pixel 9 Pro", "Google", models.CategorySmartphone, "안드로이드", 1399000, "2024-08-22", `{"display":"6.3in","chip":"Tensor G4","ram":"16GB"}`},
	{"iPhone 16 Pro", "Apple", models.CategorySmartphone, "아이폰", 1550000, "2024-09-20", `{"display":"6.3in","chip":"A18 Pro"}`},
	{"iPhone 16", "Apple", models.CategorySmartphone, "아이폰", 1250000, "2024-09-20", `{"display":"6.1in","chip":"A18"}`},
	{"ROG Phone 9", "ASUS", models.CategorySmartphone, "게이밍폰", 1490000, "2024-11-19", `{"display":"6.78in","refresh":"185Hz"}`},
	{"ROG Zephyrus G14", "ASUS", models.CategoryLaptop, "게이밍", 2890000, "2024-02-15", `{"gpu":"RTX 4070","ram":"32GB"}`},
	{"MacBook Air 13 M3", "Apple", models.CategoryLaptop, "울트라북", 1590000, "2024-03-08", `{"chip":"M3","weight":"1.24kg"}`},
	{"Galaxy Book4 Pro", "Samsung", models.CategoryLaptop, "울트라북", 2130000, "2024-01-02", `{"display":"14in AMOLED","weight":"1.23kg"}`},
	{"ThinkPad X1 Carbon Gen 12", "Lenovo", models.CategoryLaptop, "비즈니스", 2790000, "2024-04-01", `{"cpu":"Core Ultra 7","weight":"1.09kg"}`},
	{"Galaxy Buds3 Pro", "Samsung", models.CategoryWearable, "이어폰", 319000, "2024-07-24", `{"anc":true}`},
	{"AirPods Pro 2", "Apple", models.CategoryWearable, "이어폰", 359000, "2022-09-23", `{"anc":true,"chip":"H2"}`},
	{"Galaxy Watch7", "Samsung", models.CategoryWearable, "스마트워치", 369000, "2024-07-24", `{"size":"44mm"}`},
	{"Apple Watch Series 10", "Apple", models.CategoryWearable, "스마트워치", 599000, "2024-09-20", `{"size":"46mm"}`},
	{"Bespoke AI Jet", "Samsung", models.CategoryAppliance, "", 1390000, "2024-03-20", `{"type":"stick vacuum"}`},
	{"LG StanbyME Go", "LG", models.CategoryAppliance, "", 1100000, "2023-06-15", `{"display":"27in"}`},
}

func (e catalogEntry) product() *models.Product {
	p := &models.Product{
		Name:        e.name,
		Brand:       e.brand,
		Category:    e.category,
		SubCategory: e.sub,
		Price:       e.price,
		Specs:       e.specs,
	}
	if d, err := time.Parse(time.DateOnly, e.released); err == nil {
		p.ReleaseDate = &d
	}
	return p
}
