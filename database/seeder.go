package database

import (
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/iternull/kendobar-pos/models"
	"github.com/iternull/kendobar-pos/utils"
)

// DineInTableCount is how many numbered tables the floor has. Takeout
// numbers start above this range (see services.TakeoutFloor).
const DineInTableCount = 18

type menuSeed struct {
	name  string
	price int
}

var dineInMenu = []menuSeed{
	{"타코야끼 (데리야끼)", 8500},
	{"타코야끼 (불닭)", 8500},
	{"야끼소바 (간장)", 12000},
	{"야끼소바 (불닭)", 12000},
	{"우삼겹숙주볶음", 16000},
	{"나가사키해물우동", 10000},
	{"흑당인절미 당고", 6500},
	{"황도", 10000},
	{"교자", 8000},
	{"메론소다", 4000},
	{"청포도 에이드", 4000},
	{"망고 에이드", 4000},
	{"아망추", 5500},
	{"선라이즈", 6000},
	{"로이 로저스", 6000},
	{"신데렐라", 6000},
	{"하이볼 키트", 4000},
	{"입장료 + 자릿세", 5000},
	{"콜키지 1L 미만", 3000},
	{"콜키지 1L 이상", 6000},
}

var takeoutMenu = []menuSeed{
	{"타코야끼 (데리야끼)", 6500},
	{"타코야끼 (불닭)", 6500},
	{"야끼소바 (간장)", 10000},
	{"야끼소바 (불닭)", 10000},
	{"우삼겹숙주볶음", 14000},
	{"흑당인절미 당고", 5500},
	{"메론소다", 3000},
	{"청포도 에이드", 3000},
	{"망고 에이드", 3000},
	{"아망추", 4500},
	{"선라이즈", 5000},
	{"로이 로저스", 5000},
	{"신데렐라", 5000},
}

// Seed initializes the menu catalogs, the per-table ledger rows and the
// admin account. Safe to run on every startup: existing rows are left
// alone.
func Seed(db *gorm.DB) error {
	if err := seedMenus(db); err != nil {
		return err
	}
	if err := seedTables(db); err != nil {
		return err
	}
	return seedAdmin(db)
}

func seedMenus(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Menu{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, seed := range dineInMenu {
		menu := models.Menu{Name: seed.name, Price: seed.price, Context: models.MenuContextDineIn}
		if err := db.Create(&menu).Error; err != nil {
			return err
		}
	}
	for _, seed := range takeoutMenu {
		menu := models.Menu{Name: seed.name, Price: seed.price, Context: models.MenuContextTakeout}
		if err := db.Create(&menu).Error; err != nil {
			return err
		}
	}

	utils.InfoLogger.Printf("Seeded menu catalogs (%d dine-in, %d takeout items)", len(dineInMenu), len(takeoutMenu))
	return nil
}

func seedTables(db *gorm.DB) error {
	empty := make(models.ItemCounts, len(dineInMenu))
	for _, seed := range dineInMenu {
		empty[seed.name] = 0
	}

	for num := 1; num <= DineInTableCount; num++ {
		var existing models.TableLedgerEntry
		err := db.Where("table_num = ?", num).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		entry := models.TableLedgerEntry{
			TableNum:    num,
			ActiveItems: empty,
			TotalPrice:  0,
		}
		if err := db.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     "admin",
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("Seeded admin account %s", email)
	return nil
}
